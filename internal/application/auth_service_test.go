package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rutacostera/service-routes/internal/domain/user"
	"github.com/rutacostera/service-routes/internal/platform/auth"
	platformdomain "github.com/rutacostera/service-routes/internal/platform/domain"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[uuid.UUID]*user.User{},
		byEmail: map[string]*user.User{},
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, platformdomain.NewNotFoundError("User", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, platformdomain.NewNotFoundError("User", email)
	}
	return u, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	r.byID[u.ID()] = u
	r.byEmail[u.Email()] = u
	return nil
}

func newAuthService() *AuthService {
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(newFakeUserRepo(), jwtManager, zap.NewNop())
}

func TestRegister(t *testing.T) {
	service := newAuthService()

	resp, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Maria Lopez",
		Email:    "Maria@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Lopez", resp.User.Name)
	assert.Equal(t, "maria@example.com", resp.User.Email)
	assert.Equal(t, auth.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := newAuthService()
	req := RegisterRequest{Name: "Maria", Email: "maria@example.com", Password: "correct-horse"}

	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, platformdomain.CodeConflict, platformdomain.CodeOf(err))
}

func TestLogin(t *testing.T) {
	service := newAuthService()
	_, err := service.Register(context.Background(), RegisterRequest{
		Name: "Maria", Email: "maria@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := service.Login(context.Background(), LoginRequest{
		Email:    "maria@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// The issued token verifies and carries the account identity.
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	claims, err := jwtManager.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, auth.RoleUser, claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	service := newAuthService()
	_, err := service.Register(context.Background(), RegisterRequest{
		Name: "Maria", Email: "maria@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, platformdomain.CodeUnauthorized, platformdomain.CodeOf(err))

	_, err = service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)
	assert.Equal(t, platformdomain.CodeUnauthorized, platformdomain.CodeOf(err))
}
