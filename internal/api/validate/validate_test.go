package validate

import "testing"

func TestErrsCollectsAndFormats(t *testing.T) {
	var errs Errs
	errs.Add(Required("title", "  "))
	errs.Add(MinLen("description", "ab", 3))
	errs.Add(IntRange("priority", 12, 1, 9))
	errs.Add(Required("ok", "fine")) // nil, must be skipped

	if len(errs) != 3 {
		t.Fatalf("collected %d errors, want 3", len(errs))
	}
	want := "title: required; description: must be at least 3 characters; priority: must be between 1 and 9"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
	if errs.OrNil() == nil {
		t.Error("OrNil() = nil for a non-empty list")
	}
}

func TestOrNilOnCleanPayload(t *testing.T) {
	var errs Errs
	errs.Add(Required("title", "Buy milk"))
	errs.Add(MinLen("description", "2% lowfat", 3))
	errs.Add(MaxLen("description", "2% lowfat", 100))
	errs.Add(IntRange("priority", 5, 1, 9))

	if err := errs.OrNil(); err != nil {
		t.Errorf("OrNil() = %v, want nil", err)
	}
}
