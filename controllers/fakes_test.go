package controllers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"homestay-backend/middleware"
	"homestay-backend/models"
	"homestay-backend/services"
)

// fakeUserStore is an in-memory UserStore used by the handler tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User

	failSaveToken bool
	updateCalls   int
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	m := make(map[string]models.User, len(users))
	for _, u := range users {
		m[u.UserID] = u
	}
	return &fakeUserStore{users: m}
}

func (f *fakeUserStore) GetByID(_ context.Context, userID string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return models.User{}, services.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Gmail == email {
			return u, nil
		}
	}
	return models.User{}, services.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByID(ctx context.Context, userID string) (bool, error) {
	_, err := f.GetByID(ctx, userID)
	if errors.Is(err, services.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if errors.Is(err, services.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.UserID] = *user
	return nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	stored, ok := f.users[user.UserID]
	if !ok {
		return services.ErrUserNotFound
	}
	stored.FullName = user.FullName
	stored.Gmail = user.Gmail
	stored.Sdt = user.Sdt
	stored.AvatarURL = user.AvatarURL
	f.users[user.UserID] = stored
	return nil
}

func (f *fakeUserStore) SaveResetToken(_ context.Context, userID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaveToken {
		return errors.New("storage unavailable")
	}
	u, ok := f.users[userID]
	if !ok {
		return services.ErrUserNotFound
	}
	u.Token = &token
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) ValidateResetToken(_ context.Context, token string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Token != nil && *u.Token == token {
			return u, nil
		}
	}
	return models.User{}, services.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return services.ErrUserNotFound
	}
	u.Password = passwordHash
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) ClearToken(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return services.ErrUserNotFound
	}
	u.Token = nil
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) get(userID string) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID]
}

func (f *fakeUserStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeRoomFilterer returns a canned room list, or an error.
type fakeRoomFilterer struct {
	rooms []models.Room
	err   error

	gotName      string
	gotMin       float64
	gotMax       float64
	gotAmenities string
}

func (f *fakeRoomFilterer) Filter(_ context.Context, name string, minPrice, maxPrice float64, amenities string) ([]models.Room, error) {
	f.gotName = name
	f.gotMin = minPrice
	f.gotMax = maxPrice
	f.gotAmenities = amenities
	if f.err != nil {
		return nil, f.err
	}
	return f.rooms, nil
}

// newTestRouter builds a gin engine with the real templates loaded.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")
	return r
}

// asUser injects a session user the way middleware.LoadSession would.
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUser, user)
		c.Next()
	}
}
