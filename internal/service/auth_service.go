package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"auctions/internal/auth"
	"auctions/internal/errors"
	"auctions/internal/logger"
	"auctions/internal/model"
	"auctions/internal/repository"
)

// Session is an issued login session.
type Session struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
	User      *model.User
}

// AuthService handles registration and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, form RegisterForm) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	users      UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	bcryptCost int
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	users UserService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	bcryptCost int,
) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo:   userRepo,
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		bcryptCost: bcryptCost,
	}
}

// Register creates a user with a hashed password and signs them in.
func (s *authService) Register(ctx context.Context, form RegisterForm) (*Session, error) {
	form, err := form.Validate()
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, form.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, errors.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user registered", map[string]any{"user_id": user.ID, "username": user.Username})
	return s.issue(user)
}

// Login checks credentials and issues a session.
func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	return s.issue(user)
}

// Logout revokes the session token until it would have expired.
// Tokens that no longer validate need no revocation.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	if err := s.tokenStore.Revoke(ctx, claims.ID, auth.Remaining(claims)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	logger.Info("user logged out", map[string]any{"user_id": claims.UserID})
	return nil
}

// Authenticate resolves validated claims to a user, rejecting revoked sessions.
func (s *authService) Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	if claims == nil || claims.UserID == 0 {
		return nil, errors.ErrUnauthorized
	}
	revoked, err := s.tokenStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, errors.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil, errors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*Session, error) {
	tokenID, token, err := s.jwtService.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	return &Session{
		Token:     token,
		TokenID:   tokenID,
		ExpiresAt: time.Now().Add(s.jwtService.TTL()),
		User:      user,
	}, nil
}
