package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonluxe/storefront-backend/internal/users"
	"github.com/maisonluxe/storefront-backend/pkg/auth"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	"github.com/maisonluxe/storefront-backend/pkg/db"
	"github.com/maisonluxe/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
	"github.com/maisonluxe/storefront-backend/pkg/logger"
	"github.com/maisonluxe/storefront-backend/pkg/security"
)

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	MarkVerified(ctx context.Context, token string, now time.Time) (int64, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Create(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

// Service drives registration, login, logout and email verification.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
	VerifyEmail(ctx context.Context, token string) error
}

type service struct {
	repo     userRepository
	sessions sessionManager
	logg     *logger.Logger
	jwt      config.JWTConfig
	password config.PasswordConfig
	tokenTTL time.Duration
	now      func() time.Time
}

// NewService builds the auth service. The clock is injectable for tests.
func NewService(repo userRepository, sessions sessionManager, logg *logger.Logger, cfg *config.Config) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		logg:     logg,
		jwt:      cfg.JWT,
		password: cfg.Password,
		tokenTTL: cfg.Verification.TokenTTL,
		now:      time.Now,
	}, nil
}

// RegisterInput is the registration payload after transport validation.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterResult returns the new account plus the verification token the
// mailer collaborator needs to build the link.
type RegisterResult struct {
	User              *users.UserDTO
	VerificationToken string
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	token, err := security.GenerateVerificationToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating verification token")
	}

	user, err := s.repo.Create(ctx, users.CreateUserDTO{
		Email:             email,
		PasswordHash:      hash,
		FirstName:         strings.TrimSpace(input.FirstName),
		LastName:          strings.TrimSpace(input.LastName),
		VerificationToken: token,
		TokenExpiry:       s.now().Add(s.tokenTTL),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "account registered, verification pending")

	return &RegisterResult{
		User:              users.FromModel(user),
		VerificationToken: token,
	}, nil
}

// LoginResult carries the minted JWT and its session identifier.
type LoginResult struct {
	User        *users.UserDTO
	AccessToken string
	AccessID    string
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}
	if !user.IsVerified {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "email address has not been verified")
	}

	accessID := uuid.NewString()
	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if err := s.sessions.Create(ctx, accessID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating session")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		// login already succeeded, the timestamp is best effort
		s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "failed to record last login")
	}

	return &LoginResult{
		User:        users.FromModel(user),
		AccessToken: token,
		AccessID:    accessID,
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}
