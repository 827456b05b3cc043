package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/infrastructure/auth"
	"github.com/velora/storefront/internal/infrastructure/config"
	"github.com/velora/storefront/internal/infrastructure/logger"
	"github.com/velora/storefront/internal/infrastructure/store"
	"github.com/velora/storefront/internal/interfaces/http/dto"
)

// Gin context keys set by the session middleware
const (
	SessionIDKey = "session_id"
	AuthStateKey = "auth_state"
)

// AuthStateLoader reads a session's upstream credentials
type AuthStateLoader interface {
	Load(ctx context.Context, sessionID string) (*store.AuthState, error)
}

// Session binds every request to an anonymous session. A valid cookie
// keeps its session id; anything else gets a fresh session and a new
// cookie. The signed-in auth state, when present, rides along on the
// context.
func Session(tokens *auth.SessionTokenService, states AuthStateLoader, cfg config.CookieConfig, log *zap.Logger) gin.HandlerFunc {
	sameSite := parseSameSite(cfg.SameSite)

	return func(c *gin.Context) {
		sessionID := ""
		if cookie, err := c.Cookie(cfg.Name); err == nil {
			if verified, err := tokens.Verify(cookie); err == nil {
				sessionID = verified
			}
		}

		if sessionID == "" {
			fresh, token, err := tokens.Issue()
			if err != nil {
				log.Error("failed to issue session token", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(dto.ErrCodeInternal, "Could not establish a session", c.GetString("request_id")))
				return
			}
			sessionID = fresh
			c.SetSameSite(sameSite)
			c.SetCookie(cfg.Name, token, 0, cfg.Path, cfg.Domain, cfg.Secure, true)
		}

		c.Set(SessionIDKey, sessionID)
		ctx, _ := logger.WithSessionID(c.Request.Context(), log, sessionID)
		c.Request = c.Request.WithContext(ctx)

		if states != nil {
			state, err := states.Load(c.Request.Context(), sessionID)
			if err != nil {
				log.Warn("failed to load auth state", zap.Error(err))
			} else if state != nil {
				c.Set(AuthStateKey, state)
			}
		}

		c.Next()
	}
}

// GetSessionID returns the request's session id
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// GetAuthState returns the session's signed-in account, nil when
// anonymous.
func GetAuthState(c *gin.Context) *store.AuthState {
	if v, ok := c.Get(AuthStateKey); ok {
		if state, ok := v.(*store.AuthState); ok {
			return state
		}
	}
	return nil
}

// GetAccessToken returns the session's upstream bearer token, empty
// when anonymous.
func GetAccessToken(c *gin.Context) string {
	if state := GetAuthState(c); state != nil {
		return state.AccessToken
	}
	return ""
}

// RequireAuth rejects anonymous sessions
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAuthState(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Sign in to continue", c.GetString("request_id")))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects sessions whose upstream account is not an admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := GetAuthState(c)
		if state == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Sign in to continue", c.GetString("request_id")))
			return
		}
		if state.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Admin access required", c.GetString("request_id")))
			return
		}
		c.Next()
	}
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
