package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	pkgauth "github.com/shopfront/shopfront-backend/pkg/auth"
	"github.com/shopfront/shopfront-backend/pkg/config"
	"github.com/shopfront/shopfront-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionChecker struct {
	active bool
	err    error
	seen   []string
}

func (s *stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	s.seen = append(s.seen, accessID)
	return s.active, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "shopfront-test",
		ExpirationMinutes: 30,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func mintToken(t *testing.T, userID uuid.UUID, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "shopper@example.com",
		JTI:    jti,
	})
	require.NoError(t, err)
	return token
}

func runAuth(t *testing.T, header string, checker *stubSessionChecker) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var seen *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Auth(testJWTConfig(), checker, testLogger())(next)

	r := httptest.NewRequest("GET", "/api/me", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec, seen
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Error.Code
}

func TestAuthMissingHeader(t *testing.T) {
	rec, seen := runAuth(t, "", &stubSessionChecker{active: true})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	assert.Nil(t, seen)
}

func TestAuthMalformedToken(t *testing.T) {
	rec, seen := runAuth(t, "Bearer not-a-jwt", &stubSessionChecker{active: true})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthRevokedSession(t *testing.T) {
	token := mintToken(t, uuid.New(), "session-1")
	rec, seen := runAuth(t, "Bearer "+token, &stubSessionChecker{active: false})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthSessionCheckFailure(t *testing.T) {
	token := mintToken(t, uuid.New(), "session-1")
	rec, seen := runAuth(t, "Bearer "+token, &stubSessionChecker{err: errors.New("redis down")})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "DEPENDENCY_ERROR", errorCode(t, rec))
	assert.Nil(t, seen)
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	token := mintToken(t, userID, "session-1")
	checker := &stubSessionChecker{active: true}

	rec, seen := runAuth(t, "Bearer "+token, checker)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, userID.String(), UserIDFromContext(seen.Context()))
	assert.Equal(t, "session-1", AccessIDFromContext(seen.Context()))
	assert.Equal(t, []string{"session-1"}, checker.seen)
}

func TestAuthAcceptsRawTokenWithoutBearerPrefix(t *testing.T) {
	token := mintToken(t, uuid.New(), "session-1")
	rec, seen := runAuth(t, token, &stubSessionChecker{active: true})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotNil(t, seen)
}
