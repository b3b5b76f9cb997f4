package handler

import (
	"errors"
	"net/http"

	"messenger/internal/entity"
	"messenger/internal/middleware"
	"messenger/internal/service"
	"messenger/internal/view"

	"github.com/gorilla/sessions"
)

type AuthHandler struct {
	authService service.AuthService
	cookieStore *sessions.CookieStore
	renderer    *view.PageRenderer
}

func NewAuthHandler(authService service.AuthService, cookieStore *sessions.CookieStore, renderer *view.PageRenderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieStore: cookieStore,
		renderer:    renderer,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderRegister(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	if _, err := h.authService.Register(username, password); err != nil {
		if errors.Is(err, entity.ErrUserExists) {
			session, _ := h.cookieStore.Get(r, middleware.SessionName)
			session.AddFlash("Пользователь с таким именем уже существует")
			session.Save(r, w)
			h.renderRegister(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	flashRedirect(w, r, h.cookieStore, "Регистрация успешна! Теперь вы можете войти.", "/login")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.authService.Login(username, password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			session, _ := h.cookieStore.Get(r, middleware.SessionName)
			session.AddFlash("Неверное имя пользователя или пароль")
			session.Save(r, w)
			h.renderLogin(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	session.AddFlash("Вход выполнен успешно!")
	if err := session.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout drops the session unconditionally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Flashes": popFlashes(w, r, h.cookieStore),
	}
	if err := h.renderer.RenderTemplate(w, "login.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Flashes": popFlashes(w, r, h.cookieStore),
	}
	if err := h.renderer.RenderTemplate(w, "register.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
