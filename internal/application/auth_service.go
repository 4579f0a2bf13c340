package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userDomain "github.com/rutacostera/service-routes/internal/domain/user"
	"github.com/rutacostera/service-routes/internal/platform/auth"
	"github.com/rutacostera/service-routes/internal/platform/domain"
)

// RegisterRequest is the request DTO for account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request DTO for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the response representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries the account and its token pair.
type AuthResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}

// AuthService handles registration and login.
type AuthService struct {
	repo       userDomain.Repository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(repo userDomain.Repository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, jwtManager: jwtManager, logger: logger}
}

// Register creates a new account and returns its token pair.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, domain.NewConflictError("an account with this email already exists")
	} else if err != nil && domain.CodeOf(err) != domain.CodeNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewValidationError("failed to hash password")
	}

	u, err := userDomain.NewUser(req.Name, req.Email, string(hash), auth.RoleUser)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", zap.String("user_id", u.ID().String()))
	return s.buildAuthResponse(u)
}

// Login verifies credentials and returns a token pair.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.CodeOf(err) == domain.CodeNotFound {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	return s.buildAuthResponse(u)
}

func (s *AuthService) buildAuthResponse(u *userDomain.User) (*AuthResponse, error) {
	access, refresh, err := s.jwtManager.GenerateTokenPair(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User: UserDTO{
			ID:        u.ID(),
			Name:      u.Name(),
			Email:     u.Email(),
			Role:      u.Role(),
			CreatedAt: u.CreatedAt(),
		},
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
