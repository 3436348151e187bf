package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
	"rental/internal/redis"
	"rental/internal/repository"
)

// AuthService handles registration, login and token validation. Sessions
// are opaque bearer tokens held in Redis with a TTL.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   redis.TokenStoreInterface
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens redis.TokenStoreInterface) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	Name  string
	Email string
	Role  string
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Name == "" {
		return nil, ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	role := domain.Role(strings.ToUpper(req.Role))
	switch role {
	case domain.RoleRenter, domain.RoleHost, domain.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     email,
		Role:      role,
		Verified:  true,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login issues a session token for the user with the given email.
func (s *AuthService) Login(ctx context.Context, email string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil, ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	return s.tokens.Revoke(ctx, token)
}

// ValidateToken resolves a bearer token to the authenticated user.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	userID, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ListUsers retrieves all users.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}
