package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/api"
	"github.com/rs/zerolog"
)

// Authorizer decides whether a request comes from a back office administrator
type Authorizer interface {
	Authorize(r *http.Request) error
}

// RequireAdmin rejects requests the authorizer does not accept with 401
func RequireAdmin(auth Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authorize(r); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("request rejected")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Success: false, Error: ierr.PublicMessage(err)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type tokenAuthorizer struct {
	token []byte
}

// NewTokenAuthorizer accepts "Authorization: Bearer <token>". An empty token rejects everything.
func NewTokenAuthorizer(token string) Authorizer {
	return &tokenAuthorizer{token: []byte(token)}
}

func (a *tokenAuthorizer) Authorize(r *http.Request) error {
	if len(a.token) == 0 {
		return ierr.NewError("admin token is not configured").Mark(ierr.ErrUnauthorized)
	}

	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ierr.NewError("missing bearer token").Mark(ierr.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), a.token) != 1 {
		return ierr.NewError("invalid bearer token").Mark(ierr.ErrUnauthorized)
	}
	return nil
}
