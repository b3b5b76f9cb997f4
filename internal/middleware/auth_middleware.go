package middleware

import (
	"context"
	"net/http"

	"messenger/internal/entity"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie session shared by the whole application.
const SessionName = "auth-session"

type contextKey string

const userKey contextKey = "user"

// UserFrom returns the logged-in user injected by Auth.
func UserFrom(ctx context.Context) (entity.User, bool) {
	user, ok := ctx.Value(userKey).(entity.User)
	return user, ok
}

// WithUser returns a context carrying the given user identity.
func WithUser(ctx context.Context, user entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Auth gates a handler behind a session identity. Requests without one are
// redirected to the login page with a notice; the identity never reaches
// persistence unchecked.
func Auth(store *sessions.CookieStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, SessionName)
		if err != nil {
			// Undecodable cookie, treat as logged out.
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		userID, ok1 := session.Values["user_id"].(uint)
		username, ok2 := session.Values["username"].(string)
		if !(ok1 && ok2) {
			session.AddFlash("Пожалуйста, войдите в систему")
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user := entity.User{
			ID:       userID,
			Username: username,
		}

		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}
