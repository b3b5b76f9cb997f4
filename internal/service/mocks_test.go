package service

import (
	"sort"
	"time"

	"messenger/internal/entity"
)

// In-memory repositories backing the service tests.

type fakeUserRepo struct {
	users  map[uint]*entity.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*entity.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *entity.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return entity.ErrUserExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (f *fakeUserRepo) ListOthers(excludeID uint) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		if u.ID != excludeID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type fakeChatRepo struct {
	chats   map[uint]*entity.Chat
	members map[uint]map[uint]bool
	users   *fakeUserRepo
	nextID  uint
}

// newFakeChatRepo seeds the public chat, mirroring what storage does at
// startup.
func newFakeChatRepo(users *fakeUserRepo) *fakeChatRepo {
	f := &fakeChatRepo{
		chats:   map[uint]*entity.Chat{},
		members: map[uint]map[uint]bool{},
		users:   users,
		nextID:  1,
	}
	f.chats[1] = &entity.Chat{ID: 1, Name: "Общий чат", IsGroup: true, IsPublic: true, CreatedAt: time.Now()}
	f.members[1] = map[uint]bool{}
	f.nextID = 2
	return f
}

func (f *fakeChatRepo) insert(chat *entity.Chat) {
	chat.ID = f.nextID
	f.nextID++
	stored := *chat
	f.chats[chat.ID] = &stored
	f.members[chat.ID] = map[uint]bool{}
}

func (f *fakeChatRepo) CreateGroup(chat *entity.Chat, creatorID uint, memberIDs []uint) error {
	f.insert(chat)
	f.members[chat.ID][creatorID] = true
	for _, id := range memberIDs {
		f.members[chat.ID][id] = true
	}
	return nil
}

func (f *fakeChatRepo) CreatePrivate(chat *entity.Chat, firstID, secondID uint) error {
	f.insert(chat)
	f.members[chat.ID][firstID] = true
	f.members[chat.ID][secondID] = true
	return nil
}

func (f *fakeChatRepo) GetByID(id uint) (*entity.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return nil, entity.ErrChatNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeChatRepo) GetPublic() (*entity.Chat, error) {
	for _, c := range f.chats {
		if c.IsPublic && c.IsGroup {
			copied := *c
			return &copied, nil
		}
	}
	return nil, entity.ErrChatNotFound
}

func (f *fakeChatRepo) FindPrivateBetween(firstID, secondID uint) (*entity.Chat, error) {
	for id, c := range f.chats {
		if !c.IsGroup && f.members[id][firstID] && f.members[id][secondID] {
			copied := *c
			return &copied, nil
		}
	}
	return nil, entity.ErrChatNotFound
}

func (f *fakeChatRepo) ListForUser(userID uint) ([]entity.Chat, error) {
	var out []entity.Chat
	for id, c := range f.chats {
		if f.members[id][userID] {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPublic != out[j].IsPublic {
			return out[i].IsPublic
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeChatRepo) AddMember(chatID, userID uint) error {
	if _, ok := f.members[chatID]; !ok {
		f.members[chatID] = map[uint]bool{}
	}
	// insert-or-ignore
	f.members[chatID][userID] = true
	return nil
}

func (f *fakeChatRepo) IsMember(chatID, userID uint) (bool, error) {
	return f.members[chatID][userID], nil
}

func (f *fakeChatRepo) ListMembers(chatID uint) ([]entity.User, error) {
	var out []entity.User
	for userID := range f.members[chatID] {
		if u, err := f.users.GetByID(userID); err == nil {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeChatRepo) ListNonMembers(chatID, excludeID uint) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users.users {
		if u.ID != excludeID && !f.members[chatID][u.ID] {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeChatRepo) memberCount(chatID, userID uint) int {
	// membership is a set, a duplicate add can never exceed one row
	if f.members[chatID][userID] {
		return 1
	}
	return 0
}

type fakeMessageRepo struct {
	messages []entity.Message
	users    *fakeUserRepo
	nextID   uint
}

func newFakeMessageRepo(users *fakeUserRepo) *fakeMessageRepo {
	return &fakeMessageRepo{users: users, nextID: 1}
}

func (f *fakeMessageRepo) Create(message *entity.Message) error {
	message.ID = f.nextID
	f.nextID++
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageRepo) ListByChat(chatID uint) ([]entity.MessageWithAuthor, error) {
	var out []entity.MessageWithAuthor
	for _, m := range f.messages {
		if m.ChatID != chatID {
			continue
		}
		username := ""
		if u, err := f.users.GetByID(m.UserID); err == nil {
			username = u.Username
		}
		out = append(out, entity.MessageWithAuthor{
			ID:        m.ID,
			Content:   m.Content,
			UserID:    m.UserID,
			ChatID:    m.ChatID,
			CreatedAt: m.CreatedAt,
			Username:  username,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
