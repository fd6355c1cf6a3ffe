package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maisonluxe/storefront-backend/internal/users"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	"github.com/maisonluxe/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonluxe/storefront-backend/pkg/errors"
	"github.com/maisonluxe/storefront-backend/pkg/logger"
	"github.com/maisonluxe/storefront-backend/pkg/security"
)

type memUserRepo struct {
	byEmail map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*models.User{}}
}

func (m *memUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if _, ok := m.byEmail[dto.Email]; ok {
		return nil, errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	m.byEmail[dto.Email] = user
	return user, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) MarkVerified(_ context.Context, token string, now time.Time) (int64, error) {
	for _, user := range m.byEmail {
		if user.IsVerified || user.VerificationToken == nil || *user.VerificationToken != token {
			continue
		}
		if !user.TokenExpiry.After(now) {
			continue
		}
		user.IsVerified = true
		user.VerifiedAt = &now
		user.VerificationToken = nil
		user.TokenExpiry = nil
		return 1, nil
	}
	return 0, nil
}

func (m *memUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, user := range m.byEmail {
		if user.ID == id {
			user.LastLoginAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memSessions struct {
	created map[string]uuid.UUID
	revoked []string
}

func (m *memSessions) Create(_ context.Context, accessID string, userID uuid.UUID) error {
	if m.created == nil {
		m.created = map[string]uuid.UUID{}
	}
	m.created[accessID] = userID
	return nil
}

func (m *memSessions) Revoke(_ context.Context, accessID string) error {
	m.revoked = append(m.revoked, accessID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "storefront-test",
			ExpirationMinutes: 15,
			SessionTTLMinutes: 60,
		},
		Verification: config.VerificationConfig{TokenTTL: 24 * time.Hour},
	}
}

func newTestAuth(t *testing.T) (Service, *memUserRepo, *memSessions) {
	t.Helper()

	repo := newMemUserRepo()
	sessions := &memSessions{}
	logg := logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard})

	svc, err := NewService(repo, sessions, logg, testConfig())
	require.NoError(t, err)
	return svc, repo, sessions
}

func register(t *testing.T, svc Service, email string) *RegisterResult {
	t.Helper()

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "correct horse battery",
		FirstName: "Ada",
		LastName:  "Lane",
	})
	require.NoError(t, err)
	return result
}

func TestRegisterIssuesVerificationToken(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuth(t)
	result := register(t, svc, "Shopper@Example.com ")

	assert.NotEmpty(t, result.VerificationToken)
	assert.False(t, result.User.IsVerified)
	// email is normalized before storage
	stored, ok := repo.byEmail["shopper@example.com"]
	require.True(t, ok)
	require.NotNil(t, stored.TokenExpiry)
	assert.True(t, stored.TokenExpiry.After(time.Now().Add(23*time.Hour)))

	// the hash is never the raw password
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	ok, err := security.VerifyPassword("correct horse battery", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuth(t)
	register(t, svc, "dup@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "dup@example.com",
		Password: "another password",
	})
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestLoginRequiresVerifiedAccount(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuth(t)
	result := register(t, svc, "pending@example.com")

	_, err := svc.Login(context.Background(), "pending@example.com", "correct horse battery")
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	require.NoError(t, svc.VerifyEmail(context.Background(), result.VerificationToken))

	login, err := svc.Login(context.Background(), "pending@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.AccessID)
}

func TestLoginWrongCredentialsAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuth(t)
	result := register(t, svc, "known@example.com")
	require.NoError(t, svc.VerifyEmail(context.Background(), result.VerificationToken))

	_, err := svc.Login(context.Background(), "known@example.com", "wrong")
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = svc.Login(context.Background(), "unknown@example.com", "wrong")
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginCreatesSession(t *testing.T) {
	t.Parallel()

	svc, _, sessions := newTestAuth(t)
	result := register(t, svc, "session@example.com")
	require.NoError(t, svc.VerifyEmail(context.Background(), result.VerificationToken))

	login, err := svc.Login(context.Background(), "session@example.com", "correct horse battery")
	require.NoError(t, err)

	userID, ok := sessions.created[login.AccessID]
	require.True(t, ok)
	assert.Equal(t, login.User.ID, userID)
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	svc, _, sessions := newTestAuth(t)

	require.NoError(t, svc.Logout(context.Background(), "jti-1"))
	assert.Equal(t, []string{"jti-1"}, sessions.revoked)

	err := svc.Logout(context.Background(), "")
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestVerifyEmailSingleUse(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuth(t)
	result := register(t, svc, "once@example.com")

	require.NoError(t, svc.VerifyEmail(context.Background(), result.VerificationToken))

	stored := repo.byEmail["once@example.com"]
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.VerificationToken)
	assert.Nil(t, stored.TokenExpiry)

	// replay fails exactly like an invalid token
	err := svc.VerifyEmail(context.Background(), result.VerificationToken)
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	sessions := &memSessions{}
	logg := logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard})

	svc, err := NewService(repo, sessions, logg, testConfig())
	require.NoError(t, err)

	// push the clock past the token's expiry
	impl := svc.(*service)
	impl.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	result := register(t, svc, "expired@example.com")
	impl.now = time.Now

	verifyErr := svc.VerifyEmail(context.Background(), result.VerificationToken)
	require.NotNil(t, pkgerrors.As(verifyErr))
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(verifyErr).Code())

	stored := repo.byEmail["expired@example.com"]
	assert.False(t, stored.IsVerified)

	err = svc.VerifyEmail(context.Background(), "")
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
