package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mrprime/campaign-sync/internal/domain"
)

// SecretAuth guards endpoints behind a shared bearer secret. An empty
// secret rejects every request.
type SecretAuth struct {
	secret string
}

func NewSecretAuth(secret string) *SecretAuth {
	return &SecretAuth{secret: secret}
}

// Verify checks the Authorization header of r
func (a *SecretAuth) Verify(r *http.Request) error {
	if a.secret == "" {
		return &domain.AuthorizationError{Reason: "no secret configured"}
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return &domain.AuthorizationError{Reason: "missing authorization header"}
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return &domain.AuthorizationError{Reason: "invalid authorization header format"}
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(a.secret)) != 1 {
		return &domain.AuthorizationError{Reason: "invalid secret"}
	}
	return nil
}

// RequireSecret answers 401 {"error":"Unauthorized"} before next runs when
// the bearer secret does not match
func (a *SecretAuth) RequireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := a.Verify(r); err != nil {
			var authErr *domain.AuthorizationError
			status := http.StatusInternalServerError
			if errors.As(err, &authErr) {
				status = http.StatusUnauthorized
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}
