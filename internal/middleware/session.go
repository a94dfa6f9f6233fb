package middleware

import (
	"net/http"

	"github.com/josh-kwaku/securebank/internal/session"
)

type tokenValidator interface {
	Validate(token string) (string, error)
}

// Session attaches the user id from a valid session cookie to the request
// context. It never rejects a request: the ledger works on the stored current
// user, and the cookie only identifies who is asking.
func Session(tokens tokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(session.CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := tokens.Validate(c.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := session.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
