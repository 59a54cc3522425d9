package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mira/chat-relay/internal/domain"
	"github.com/mira/chat-relay/internal/repository"
	"github.com/mira/chat-relay/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthService owns credentials and access tokens: registration, login and
// the token-to-user resolution the request guard runs on every protected
// call.
type AuthService struct {
	userRepo repository.UserRepository
	issuer   *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index is the authority; the lookup above only narrows
		// the race window.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and mints an access token. A missing user
// and a wrong password produce the same error so callers cannot probe for
// registered usernames.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.issuer.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// AuthenticateToken resolves a bearer token to the user it was issued for.
// Every failure collapses to ErrUnauthorized; the underlying cause is logged
// here and never reaches the client.
func (s *AuthService) AuthenticateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	username, err := s.issuer.Verify(tokenString)
	if err != nil {
		log.Printf("ERROR [service.AuthenticateToken] token rejected: %v", err)
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR [service.AuthenticateToken] token subject has no user")
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}
