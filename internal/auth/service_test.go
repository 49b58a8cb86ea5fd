package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/internal/accounts"
	pkgauth "github.com/shopfront/shopfront-backend/pkg/auth"
	"github.com/shopfront/shopfront-backend/pkg/config"
	"github.com/shopfront/shopfront-backend/pkg/db"
	"github.com/shopfront/shopfront-backend/pkg/db/models"
	pkgerrors "github.com/shopfront/shopfront-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubSessionManager struct {
	generated []string
	revoked   []string
	rotateErr error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	newID := "rotated-" + oldAccessID
	return newID, "refresh-" + newID, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "shopfront-test",
		ExpirationMinutes:      30,
		RefreshTokenTTLMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) (Service, *stubSessionManager, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))

	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		AccountsRepo:   accounts.NewRepository(conn),
		DB:             db.NewWithConn(conn),
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc, sessions, conn
}

func TestSignupCreatesAccountAndTokens(t *testing.T) {
	svc, sessions, _ := newTestService(t)

	result, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Shopper",
		Email:    "Shopper@Example.COM",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "shopper@example.com", result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	require.Len(t, sessions.generated, 1)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, sessions.generated[0], claims.ID)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Shopper",
		Email:    "shopper@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupRequest{
		Name:     "Other",
		Email:    "SHOPPER@example.com",
		Password: "hunter2hunter2",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Shopper",
		Email:    "shopper@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Shopper", result.User.Name)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Shopper",
		Email:    "shopper@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, badPassword := svc.Login(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	})
	_, badEmail := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})

	for _, err := range []error{badPassword, badEmail} {
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
		assert.Equal(t, invalidCredentialsMessage, typed.Message())
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, sessions, _ := newTestService(t)

	signedUp, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Shopper",
		Email:    "shopper@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  signedUp.AccessToken,
		RefreshToken: signedUp.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, signedUp.RefreshToken, pair.RefreshToken)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "rotated-"+sessions.generated[0], claims.ID)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions, _ := newTestService(t)

	require.NoError(t, svc.Logout(context.Background(), "access-123"))
	require.Len(t, sessions.revoked, 1)
	assert.Equal(t, "access-123", sessions.revoked[0])
}

func TestProfileMissingUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Profile(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
