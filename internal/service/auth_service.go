package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/DrNour/Nour-translation-app/internal/dto"
	"github.com/DrNour/Nour-translation-app/internal/models"
	"github.com/DrNour/Nour-translation-app/internal/repository"
)

var (
	// ErrUsernameTaken indicates the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials indicates the username/password pair is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles registration and login. Identity is resolved once at
// login and carried in the token; nothing downstream reads ambient session
// state.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.AccountResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
}

type authService struct {
	accounts  repository.AccountRepository
	validator *validator.Validate
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(accounts repository.AccountRepository, validate *validator.Validate, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		accounts:  accounts,
		validator: validate,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AccountResponse{}, err
	}

	// Username uniqueness is checked up front; the unique index backs it up
	// against races.
	if _, err := s.accounts.GetByUsername(ctx, payload.Username); err == nil {
		return dto.AccountResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AccountResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		Username:     payload.Username,
		PasswordHash: string(hash),
		Role:         payload.Role,
	}

	if err := s.accounts.Create(ctx, &account); err != nil {
		// Two registrations can race past the pre-check; the unique index
		// decides, and its violation is still a taken username.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.AccountResponse{}, ErrUsernameTaken
		}
		return dto.AccountResponse{}, err
	}

	s.logger.Info().Uint("account_id", account.ID).Str("role", account.Role).Msg("account registered")

	return dto.NewAccountResponse(account), nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	account, err := s.accounts.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{
		Token:   token,
		Account: dto.NewAccountResponse(account),
	}, nil
}

func (s *authService) issueToken(account models.Account) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"role": account.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
