// internal/httpserver/auth.go
//
// Round tickets. POST /rounds mints a signed token scoped to one round id;
// every /rounds/{id}/* call (REST and WebSocket upgrade) must present it.
// Tickets outlive the deadline slightly so a finished board stays readable.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var errInvalidTicket = errors.New("invalid round ticket")

func jwtSecret() []byte {
	return []byte(getEnv("JWT_SECRET", "dev_secret_change_me"))
}

// signTicket mints the bearer token returned on round creation.
func signTicket(roundID, player string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"rid": roundID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if player != "" {
		claims["player"] = player
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// verifyTicket checks signature and expiry and returns the round id the
// ticket is scoped to.
func verifyTicket(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidTicket
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidTicket
	}
	rid, _ := claims["rid"].(string)
	if rid == "" {
		return "", errInvalidTicket
	}
	return rid, nil
}

// bearerOrQuery pulls the ticket from the Authorization header or, for
// WebSocket clients that cannot set headers, from ?token=.
func bearerOrQuery(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// requireTicket gates a /rounds/{id}/... route on a valid ticket for that
// exact round.
func (s *Server) requireTicket() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerOrQuery(r)
			if raw == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			rid, err := verifyTicket(raw)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			if rid != chi.URLParam(r, "id") {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
