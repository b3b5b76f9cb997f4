package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"messenger/internal/entity"
	"messenger/internal/middleware"
	"messenger/internal/service"
	"messenger/internal/view"

	"github.com/gorilla/sessions"
)

type ChatHandler struct {
	chatService service.ChatService
	userService service.UserService
	cookieStore *sessions.CookieStore
	renderer    *view.PageRenderer
}

func NewChatHandler(chatService service.ChatService, userService service.UserService, cookieStore *sessions.CookieStore, renderer *view.PageRenderer) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		userService: userService,
		cookieStore: cookieStore,
		renderer:    renderer,
	}
}

// Dashboard lists the user's chats, public room first, plus the other users
// available for group creation.
func (h *ChatHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	chats, err := h.chatService.ListForUser(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	allUsers, err := h.userService.ListOthers(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Username": user.Username,
		"Chats":    chats,
		"AllUsers": allUsers,
		"Flashes":  popFlashes(w, r, h.cookieStore),
	}
	if err := h.renderer.RenderTemplate(w, "dashboard.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("chat_name")
	var memberIDs []uint
	for _, raw := range r.Form["users"] {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			continue
		}
		memberIDs = append(memberIDs, uint(id))
	}

	chat, err := h.chatService.CreateGroup(&user, name, memberIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	flashRedirect(w, r, h.cookieStore, fmt.Sprintf("Чат %q создан!", name), chatPath(chat.ID))
}

func (h *ChatHandler) ViewChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	chatID, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	chatView, err := h.chatService.View(user.ID, chatID)
	if err != nil {
		if errors.Is(err, entity.ErrNotMember) {
			flashRedirect(w, r, h.cookieStore, "У вас нет доступа к этому чату", "/dashboard")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Chat":           chatView.Chat,
		"Messages":       chatView.Messages,
		"Members":        chatView.Members,
		"AvailableUsers": chatView.Available,
		"UserID":         user.ID,
		"Username":       user.Username,
		"Flashes":        popFlashes(w, r, h.cookieStore),
	}
	if err := h.renderer.RenderTemplate(w, "chat.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ChatHandler) AddToChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	chatID, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}

	rawID := r.FormValue("user_id")
	targetID, err := strconv.ParseUint(rawID, 10, 32)
	if rawID == "" || err != nil {
		flashRedirect(w, r, h.cookieStore, "Выберите пользователя", chatPath(chatID))
		return
	}

	target, err := h.chatService.AddMember(user.ID, chatID, uint(targetID))
	switch {
	case errors.Is(err, entity.ErrNotMember):
		flashRedirect(w, r, h.cookieStore, "У вас нет доступа к этому чату", "/dashboard")
	case errors.Is(err, entity.ErrAlreadyMember):
		flashRedirect(w, r, h.cookieStore, "Этот пользователь уже в чате", chatPath(chatID))
	case errors.Is(err, entity.ErrUserNotFound):
		flashRedirect(w, r, h.cookieStore, "Пользователь не найден", chatPath(chatID))
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		flashRedirect(w, r, h.cookieStore, fmt.Sprintf("Пользователь %s добавлен в чат!", target.Username), chatPath(chatID))
	}
}

func (h *ChatHandler) CreatePrivateChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	otherID, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	chat, created, err := h.chatService.CreateOrReusePrivate(&user, otherID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			flashRedirect(w, r, h.cookieStore, "Пользователь не найден", "/users")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if created {
		flashRedirect(w, r, h.cookieStore, "Создан приватный чат: "+chat.Name, chatPath(chat.ID))
		return
	}
	http.Redirect(w, r, chatPath(chat.ID), http.StatusSeeOther)
}
