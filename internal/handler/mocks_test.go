package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"messenger/internal/entity"
	"messenger/internal/middleware"
	"messenger/internal/service"
	"messenger/internal/view"

	"github.com/gorilla/sessions"
)

type mockAuthService struct {
	registerFn func(username, password string) (*entity.User, error)
	loginFn    func(username, password string) (*entity.User, error)
}

func (m *mockAuthService) Register(username, password string) (*entity.User, error) {
	return m.registerFn(username, password)
}

func (m *mockAuthService) Login(username, password string) (*entity.User, error) {
	return m.loginFn(username, password)
}

type mockChatService struct {
	listFn          func(userID uint) ([]entity.Chat, error)
	createGroupFn   func(creator *entity.User, name string, memberIDs []uint) (*entity.Chat, error)
	createPrivateFn func(requester *entity.User, otherID uint) (*entity.Chat, bool, error)
	viewFn          func(userID, chatID uint) (*service.ChatView, error)
	addMemberFn     func(actorID, chatID, targetID uint) (*entity.User, error)
}

func (m *mockChatService) ListForUser(userID uint) ([]entity.Chat, error) {
	return m.listFn(userID)
}

func (m *mockChatService) CreateGroup(creator *entity.User, name string, memberIDs []uint) (*entity.Chat, error) {
	return m.createGroupFn(creator, name, memberIDs)
}

func (m *mockChatService) CreateOrReusePrivate(requester *entity.User, otherID uint) (*entity.Chat, bool, error) {
	return m.createPrivateFn(requester, otherID)
}

func (m *mockChatService) View(userID, chatID uint) (*service.ChatView, error) {
	return m.viewFn(userID, chatID)
}

func (m *mockChatService) AddMember(actorID, chatID, targetID uint) (*entity.User, error) {
	return m.addMemberFn(actorID, chatID, targetID)
}

type mockMessageService struct {
	sendFn func(userID, chatID uint, content string) error
}

func (m *mockMessageService) Send(userID, chatID uint, content string) error {
	return m.sendFn(userID, chatID, content)
}

type mockUserService struct {
	listFn func(excludeID uint) ([]entity.User, error)
	getFn  func(id uint) (*entity.User, error)
}

func (m *mockUserService) ListOthers(excludeID uint) ([]entity.User, error) {
	return m.listFn(excludeID)
}

func (m *mockUserService) GetByID(id uint) (*entity.User, error) {
	return m.getFn(id)
}

// newTestRenderer writes a minimal template set to a temp dir; each page
// renders a recognizable marker.
func newTestRenderer(t *testing.T) *view.PageRenderer {
	t.Helper()

	dir := t.TempDir()
	layouts := filepath.Join(dir, "layouts")
	if err := os.MkdirAll(layouts, 0o755); err != nil {
		t.Fatal(err)
	}

	layout := `{{define "header"}}{{range .Flashes}}[flash:{{.}}]{{end}}{{end}}{{define "footer"}}{{end}}`
	if err := os.WriteFile(filepath.Join(layouts, "base.html"), []byte(layout), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, page := range []string{"login", "register", "dashboard", "chat", "users"} {
		body := `{{template "header" .}}` + page + `-page{{template "footer" .}}`
		if err := os.WriteFile(filepath.Join(dir, page+".html"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tmplMap, err := view.RetrieveWebTemplates(dir)
	if err != nil {
		t.Fatalf("loading templates: %v", err)
	}
	return view.NewPageRenderer(tmplMap)
}

func newTestStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret"))
}

// formRequest builds a POST with urlencoded form values, optionally carrying
// a logged-in identity in its context.
func formRequest(t *testing.T, target string, values url.Values, user *entity.User) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), *user))
	}
	return req
}

func authedGet(t *testing.T, target string, user entity.User) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, target string) {
	t.Helper()

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != target {
		t.Errorf("expected redirect to %q, got %q", target, loc)
	}
}
