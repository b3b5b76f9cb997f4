package handler

import (
	"net/http"

	"messenger/internal/middleware"
	"messenger/internal/service"
	"messenger/internal/view"

	"github.com/gorilla/sessions"
)

type UserHandler struct {
	userService service.UserService
	cookieStore *sessions.CookieStore
	renderer    *view.PageRenderer
}

func NewUserHandler(userService service.UserService, cookieStore *sessions.CookieStore, renderer *view.PageRenderer) *UserHandler {
	return &UserHandler{
		userService: userService,
		cookieStore: cookieStore,
		renderer:    renderer,
	}
}

// ListUsers renders the directory of everyone except the requester.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	users, err := h.userService.ListOthers(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Users":    users,
		"Username": user.Username,
		"Flashes":  popFlashes(w, r, h.cookieStore),
	}
	if err := h.renderer.RenderTemplate(w, "users.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
