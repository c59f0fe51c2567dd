package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avelar-dev/taskcast-be/internal/api/httpx"
	"github.com/avelar-dev/taskcast-be/internal/models"
)

// Claims defines the JWT claims structure. The subject registered
// claim carries the username.
type Claims struct {
	UserID int64       `json:"uid"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

// userClaimsKey is the context key under which the middleware stores
// the validated claims.
const userClaimsKey = contextKey("userClaims")

// Manager issues and validates tokens with a process-wide symmetric
// secret injected at startup. Rotating the secret invalidates every
// outstanding token; there is no revocation list.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager for the given secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// GenerateToken creates a signed token for a user, valid for ttl.
func (m *Manager) GenerateToken(user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a token string. A bad signature,
// a malformed token, an expired token, or missing identity claims all
// fail the same way; callers get one generic error to surface.
func (m *Manager) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return nil, fmt.Errorf("token missing identity claims")
	}
	claims.Role = models.ParseRole(string(claims.Role))
	return claims, nil
}

// Middleware creates a middleware for protecting routes. Requests
// without a valid bearer token are rejected with 401.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = strings.TrimSpace(parts[1])
				}
			}

			if tokenStr == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "missing auth token")
				return
			}

			claims, err := m.ValidateToken(tokenStr)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only requests whose claims carry the admin role.
// Role failures answer 401, matching the token failures above, so the
// response never distinguishes a missing credential from a weak one.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Role != models.RoleAdmin {
			httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom retrieves the validated claims stored by Middleware.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	return claims, ok
}
