package handler

import (
	"errors"
	"net/http"
	"strings"

	"messenger/internal/entity"
	"messenger/internal/middleware"
	"messenger/internal/service"

	"github.com/gorilla/sessions"
)

type MessageHandler struct {
	messageService service.MessageService
	cookieStore    *sessions.CookieStore
}

func NewMessageHandler(messageService service.MessageService, cookieStore *sessions.CookieStore) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		cookieStore:    cookieStore,
	}
}

// SendMessage posts into a chat the user is a member of. Whitespace-only
// content is a silent no-op.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
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
	content := strings.TrimSpace(r.FormValue("content"))

	if content == "" {
		http.Redirect(w, r, chatPath(chatID), http.StatusSeeOther)
		return
	}

	if err := h.messageService.Send(user.ID, chatID, content); err != nil {
		if errors.Is(err, entity.ErrNotMember) {
			flashRedirect(w, r, h.cookieStore, "У вас нет доступа к этому чату", "/dashboard")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	flashRedirect(w, r, h.cookieStore, "Сообщение отправлено!", chatPath(chatID))
}
