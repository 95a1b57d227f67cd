package api

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"messaging-demo/backend/internal/models"
	"messaging-demo/backend/internal/service"
	"messaging-demo/backend/pkg/envelope"
	"messaging-demo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// fakeDirectory is an in-memory UserDirectory for handler tests
type fakeDirectory struct {
	users     map[uint]models.User
	passwords map[uint]string
	nextID    uint
	clock     time.Time
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users:     make(map[uint]models.User),
		passwords: make(map[uint]string),
		nextID:    1,
		clock:     time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

// addUser seeds a user with a creation timestamp one minute after the last
func (f *fakeDirectory) addUser(email, password, first, last string) models.User {
	user := models.User{
		ID:        f.nextID,
		Email:     email,
		FirstName: first,
		LastName:  last,
		CreatedAt: f.clock,
		UpdatedAt: f.clock,
	}
	f.users[user.ID] = user
	f.passwords[user.ID] = password
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	return user
}

func (f *fakeDirectory) Register(req *models.RegisterRequest) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == req.Email {
			return nil, service.ErrEmailTaken
		}
	}
	user := f.addUser(req.Email, req.Password, req.FirstName, req.LastName)
	return &user, nil
}

func (f *fakeDirectory) Authenticate(email, password string) (*models.User, string, error) {
	for _, u := range f.users {
		if u.Email == email && f.passwords[u.ID] == password {
			user := u
			return &user, "test-token", nil
		}
	}
	return nil, "", service.ErrInvalidCredentials
}

func (f *fakeDirectory) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeDirectory) missing(ids []uint) []uint {
	var missing []uint
	for _, id := range ids {
		if _, ok := f.users[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func (f *fakeDirectory) ListExcluding(excludeID *uint) ([]models.User, error) {
	if excludeID != nil {
		if missing := f.missing([]uint{*excludeID}); len(missing) > 0 {
			return nil, &service.UsersNotFoundError{MissingIDs: missing}
		}
	}
	var users []models.User
	for _, u := range f.users {
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeDirectory) ListPage(excludeID uint, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	for _, u := range f.users {
		if u.ID == excludeID {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})

	total := int64(len(users))
	start := (page - 1) * limit
	if start > len(users) {
		start = len(users)
	}
	end := start + limit
	if end > len(users) {
		end = len(users)
	}
	return users[start:end], total, nil
}

// fakeStore is an in-memory ConversationStore backed by a fakeDirectory
// for existence checks.
type fakeStore struct {
	dir      *fakeDirectory
	messages []models.Message
	nextID   uint
	clock    time.Time
}

func newFakeStore(dir *fakeDirectory) *fakeStore {
	return &fakeStore{
		dir:    dir,
		nextID: 1,
		clock:  time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) Send(senderID, receiverID uint, body string) error {
	if missing := f.dir.missing([]uint{senderID, receiverID}); len(missing) > 0 {
		return &service.UsersNotFoundError{MissingIDs: missing}
	}
	if strings.TrimSpace(body) == "" {
		return service.ErrEmptyMessage
	}
	f.messages = append(f.messages, models.Message{
		MessageID:      f.nextID,
		SenderUserID:   senderID,
		ReceiverUserID: receiverID,
		Message:        body,
		CreatedAt:      f.clock,
		UpdatedAt:      f.clock,
	})
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	return nil
}

func (f *fakeStore) pair(a, b uint) []models.Message {
	var out []models.Message
	for _, m := range f.messages {
		if (m.SenderUserID == a && m.ReceiverUserID == b) ||
			(m.SenderUserID == b && m.ReceiverUserID == a) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].MessageID < out[j].MessageID
	})
	return out
}

func (f *fakeStore) Conversation(userA, userB uint) ([]models.Message, error) {
	if missing := f.dir.missing([]uint{userA, userB}); len(missing) > 0 {
		return nil, &service.UsersNotFoundError{MissingIDs: missing}
	}
	return f.pair(userA, userB), nil
}

func (f *fakeStore) ConversationPage(userA, userB uint, page, limit int) ([]models.Message, int64, error) {
	if missing := f.dir.missing([]uint{userA, userB}); len(missing) > 0 {
		return nil, 0, &service.UsersNotFoundError{MissingIDs: missing}
	}
	all := f.pair(userA, userB)
	total := int64(len(all))

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// testAuth authenticates requests via the X-Test-User header
func testAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Test-User")
		if raw == "" {
			c.JSON(envelope.Error("401", "Authentication Required", "Authentication is required"))
			c.Abort()
			return
		}
		id, _ := strconv.ParseUint(raw, 10, 64)
		c.Set("userId", uint(id))
		c.Next()
	}
}

// newTestRouter wires both version handlers over the fakes
func newTestRouter(dir *fakeDirectory, store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	log := logger.New(logger.Config{Level: "error", JSON: true})

	NewV1Handler(dir, store, log).RegisterRoutes(engine, testAuth())
	NewV2Handler(dir, store, log).RegisterRoutes(engine, testAuth())

	return engine
}
