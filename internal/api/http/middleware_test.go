package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "thoonsheet-backend/internal/api/http"
	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// stubUserRepo serves a fixed set of users; only the lookup methods used by
// the middleware are live.
type stubUserRepo struct {
	users map[int32]*domain.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (s *stubUserRepo) List(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Update(ctx context.Context, u *domain.User) error { return nil }
func (s *stubUserRepo) UpdatePassword(ctx context.Context, id int32, hash string) error {
	return nil
}
func (s *stubUserRepo) TouchLastLogin(ctx context.Context, id int32) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id int32) error         { return nil }

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager(testSecret, time.Hour)
	repo := &stubUserRepo{users: map[int32]*domain.User{
		1: {ID: 1, Username: "owner1", Role: domain.RoleOwner, TokenVersion: 2},
	}}
	middleware := httpapi.NewAuthMiddleware(tokens, repo)

	var reached bool
	handler := middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("ValidToken", func(t *testing.T) {
		reached = false
		token, err := tokens.GenerateAccessToken(1, "owner1", 2)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("StaleTokenVersion", func(t *testing.T) {
		reached = false
		// Minted against version 1; the stored account is at 2 after a
		// password change.
		token, err := tokens.GenerateAccessToken(1, "owner1", 1)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		reached = false
		token, err := tokens.GenerateAccessToken(99, "ghost", 0)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})
}
