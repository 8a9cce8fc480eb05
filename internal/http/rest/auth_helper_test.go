package rest

import (
	"net/http/httptest"
	"testing"

	"github.com/pollhub/pollhub_api/config"
	"github.com/pollhub/pollhub_api/util/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPI() *API {
	return &API{
		Config: &config.Config{
			JwtSecret:     "test-access-secret",
			JwtExpires:    "15m",
			RefreshSecret: "test-refresh-secret",
			RefreshExpiry: "168h",
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	api := testAPI()

	access, _, err := api.createToken("user-123")
	require.NoError(t, err)

	claims, err := api.verifyToken(access, false)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	api := testAPI()

	refresh, _, err := api.createRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := api.verifyToken(refresh, true)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	api := testAPI()

	access, _, err := api.createToken("user-123")
	require.NoError(t, err)
	refresh, _, err := api.createRefreshToken("user-123")
	require.NoError(t, err)

	_, err = api.verifyToken(access, true)
	assert.Error(t, err)

	_, err = api.verifyToken(refresh, false)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	api := testAPI()

	access, _, err := api.createToken("user-123")
	require.NoError(t, err)

	_, err = api.verifyToken(access+"x", false)
	assert.Error(t, err)

	_, err = api.verifyToken("not-a-token", false)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, checkPassword(hash, "correct horse battery staple"))
	assert.Error(t, checkPassword(hash, "wrong password"))
}

func TestSetSessionCookies(t *testing.T) {
	api := testAPI()
	w := httptest.NewRecorder()

	_, err := api.refreshSession(w, "user-123")
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	byName := make(map[string]bool)
	for _, c := range cookies {
		byName[c.Name] = true
		assert.True(t, c.HttpOnly, "cookie %s must be HttpOnly", c.Name)
		assert.NotEmpty(t, c.Value)
	}
	assert.True(t, byName[values.CookieAccessToken])
	assert.True(t, byName[values.CookieRefreshToken])
}

func TestClearSessionCookies(t *testing.T) {
	api := testAPI()
	w := httptest.NewRecorder()

	api.clearSessionCookies(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Equal(t, -1, c.MaxAge)
		assert.Empty(t, c.Value)
	}
}
