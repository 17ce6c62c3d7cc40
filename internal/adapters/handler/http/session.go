package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const SessionKey contextKey = "ballot_session"

const sessionCookieName = "ballot_session"

// ballotSession makes sure every ballot request carries a session id, minting
// one and setting the cookie when the request has none or an invalid one.
func ballotSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var session uuid.UUID
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			session, _ = uuid.Parse(cookie.Value)
		}

		if session == uuid.Nil {
			session = uuid.New()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    session.String(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   24 * 60 * 60, // 1 day
			})
		}

		ctx := context.WithValue(r.Context(), SessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
