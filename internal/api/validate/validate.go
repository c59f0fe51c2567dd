package validate

import (
	"fmt"
	"strings"
)

// ErrField describes one invalid request field.
type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Errs collects field errors for a whole payload.
type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Add appends a field error when err is non-nil.
func (e *Errs) Add(err *ErrField) {
	if err != nil {
		*e = append(*e, *err)
	}
}

// OrNil returns the collected errors, or nil when the payload passed.
func (e Errs) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if len(value) < min {
		return &ErrField{Field: field, Msg: fmt.Sprintf("must be at least %d characters", min)}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if len(value) > max {
		return &ErrField{Field: field, Msg: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}

func IntRange(field string, v, lo, hi int) *ErrField {
	if v < lo || v > hi {
		return &ErrField{Field: field, Msg: fmt.Sprintf("must be between %d and %d", lo, hi)}
	}
	return nil
}
