package handler

import (
	"net/http"
	"strconv"

	"messenger/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

func chatPath(chatID uint) string {
	return "/chat/" + strconv.FormatUint(uint64(chatID), 10)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// flashRedirect stores a one-shot notice and redirects.
func flashRedirect(w http.ResponseWriter, r *http.Request, store *sessions.CookieStore, message, target string) {
	session, _ := store.Get(r, middleware.SessionName)
	session.AddFlash(message)
	session.Save(r, w)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// popFlashes drains pending notices; reading consumes them, so the session
// has to be saved again.
func popFlashes(w http.ResponseWriter, r *http.Request, store *sessions.CookieStore) []interface{} {
	session, _ := store.Get(r, middleware.SessionName)
	flashes := session.Flashes()
	if len(flashes) > 0 {
		session.Save(r, w)
	}
	return flashes
}
