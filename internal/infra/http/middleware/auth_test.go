package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/auth"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
)

// MockUserRepositoryMiddleware
type MockUserRepositoryMiddleware struct {
	mock.Mock
}

func (m *MockUserRepositoryMiddleware) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepositoryMiddleware) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepositoryMiddleware) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepositoryMiddleware) List(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepositoryMiddleware) UpdatePassword(ctx context.Context, id int64, hashed, tempPassword string) error {
	args := m.Called(ctx, id, hashed, tempPassword)
	return args.Error(0)
}

func (m *MockUserRepositoryMiddleware) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func identityEcho(t *testing.T, wantID int64, wantName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantID, middleware.UserID(r.Context()))
		assert.Equal(t, wantName, middleware.UserName(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatePutsIdentityInContext(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	token, err := tokens.Generate(&entity.User{ID: 7, Name: "Claire"})
	assert.NoError(t, err)

	a := middleware.NewAuthenticator(tokens, nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	a.Authenticate(identityEcho(t, 7, "Claire")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	a := middleware.NewAuthenticator(auth.NewTokenManager("test-secret"), nil)

	w := httptest.NewRecorder()
	a.Authenticate(identityEcho(t, 0, "")).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	a := middleware.NewAuthenticator(auth.NewTokenManager("test-secret"), nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()

	a.Authenticate(identityEcho(t, 0, "")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsForgedToken(t *testing.T) {
	forged, err := auth.NewTokenManager("other-secret").Generate(&entity.User{ID: 7, Name: "Claire"})
	assert.NoError(t, err)

	a := middleware.NewAuthenticator(auth.NewTokenManager("test-secret"), nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()

	a.Authenticate(identityEcho(t, 0, "")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// The admin check reads the stored role on every request, so a stale token
// of a demoted admin gives no access.
func TestRequireAdminChecksStoredRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")

	cases := []struct {
		name string
		role string
		want int
	}{
		{"admin passes", entity.RoleAdmin, http.StatusOK},
		{"regular user blocked", entity.RoleUser, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := new(MockUserRepositoryMiddleware)
			users.On("FindByID", mock.Anything, int64(7)).
				Return(&entity.User{ID: 7, Role: tc.role}, nil)

			a := middleware.NewAuthenticator(tokens, users)

			token, _ := tokens.Generate(&entity.User{ID: 7, Name: "Claire"})
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			chain := a.Authenticate(a.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))
			chain.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}
