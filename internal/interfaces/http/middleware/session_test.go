package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/infrastructure/auth"
	"github.com/velora/storefront/internal/infrastructure/config"
	"github.com/velora/storefront/internal/infrastructure/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func cookieConfig() config.CookieConfig {
	return config.CookieConfig{Name: "storefront_session", Path: "/", SameSite: "lax"}
}

func tokenService() *auth.SessionTokenService {
	return auth.NewSessionTokenService(config.SessionConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Expiration: time.Hour,
		Issuer:     "storefront-gateway",
	})
}

func sessionRouter(states AuthStateLoader) (*gin.Engine, *auth.SessionTokenService) {
	tokens := tokenService()
	r := gin.New()
	r.Use(Session(tokens, states, cookieConfig(), zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		state := GetAuthState(c)
		role := ""
		if state != nil {
			role = state.Role
		}
		c.JSON(http.StatusOK, gin.H{"session_id": GetSessionID(c), "role": role})
	})
	return r, tokens
}

func TestSessionIssuesCookie(t *testing.T) {
	r, _ := sessionRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "storefront_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionKeepsExistingSession(t *testing.T) {
	r, tokens := sessionRouter(nil)

	token, err := tokens.IssueFor("sess-fixed")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sess-fixed")
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionRotatesInvalidCookie(t *testing.T) {
	r, _ := sessionRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestRequireAdmin(t *testing.T) {
	mem := store.NewMemoryStore()
	states := store.NewAuthRepository(mem)
	tokens := tokenService()

	r := gin.New()
	r.Use(Session(tokens, states, cookieConfig(), zap.NewNop()))
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	get := func(t *testing.T, sessionID string) int {
		t.Helper()
		token, err := tokens.IssueFor(sessionID)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: "storefront_session", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(t, "sess-anon"))
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		require.NoError(t, states.Save(context.Background(), "sess-cust", &store.AuthState{
			AccessToken: "tok", Role: "customer",
		}))
		assert.Equal(t, http.StatusForbidden, get(t, "sess-cust"))
	})

	t.Run("admin passes", func(t *testing.T) {
		require.NoError(t, states.Save(context.Background(), "sess-admin", &store.AuthState{
			AccessToken: "tok", Role: "admin",
		}))
		assert.Equal(t, http.StatusOK, get(t, "sess-admin"))
	})
}
