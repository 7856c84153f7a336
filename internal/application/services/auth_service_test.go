package services

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	schema "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/database"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	userrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/user"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/security"
	"github.com/PageCraftHQ/pagecraft-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, schema.NewTableCreator().CreateSchema(db))

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)

	return NewAuthService(userrepo.NewUserRepository(db, logger), logger)
}

func TestRegisterNormalizesEmailAndSignsToken(t *testing.T) {
	svc := newAuthService(t)

	token, user, err := svc.Register("  Ada@Example.COM ", "long-enough-password", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	claims, err := security.ValidateJWT(token, config.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, security.GetUserIDFromClaims(claims))
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register("not-an-email", "long-enough-password", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)

	_, _, err = svc.Register("ada@example.com", "short", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register("ada@example.com", "long-enough-password", "Ada")
	require.NoError(t, err)

	_, _, err = svc.Register("ADA@example.com", "another-password-1", "Imposter")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register("ada@example.com", "long-enough-password", "Ada")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login("ada@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login("nobody@example.com", "long-enough-password")

	assert.ErrorIs(t, wrongPassword, apperrors.ErrNotFound)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrNotFound)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginReturnsUsableToken(t *testing.T) {
	svc := newAuthService(t)

	_, registered, err := svc.Register("ada@example.com", "long-enough-password", "Ada")
	require.NoError(t, err)

	token, user, err := svc.Login("Ada@Example.com", "long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := security.ValidateJWT(token, config.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, security.GetUserIDFromClaims(claims))

	status, err := svc.Status(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", status.Email)
}
