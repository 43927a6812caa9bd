package middleware

import (
	"strings"

	"github.com/delcom/fittrack/internal/constants"
	"github.com/delcom/fittrack/internal/repository"
	"github.com/delcom/fittrack/internal/response"
	"github.com/delcom/fittrack/internal/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// publicPathPrefixes are reachable without any credential.
var publicPathPrefixes = []string{
	"/auth",
	"/api/auth",
	"/api/public",
	"/files",
	"/css",
	"/js",
	"/error",
	"/health",
	"/favicon.ico",
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from an Authorization header. A missing
// "Bearer " prefix or an empty remainder both mean no token.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// ResolveUser determines the acting user for every request. Public paths
// pass through untouched. An authenticated session principal is adopted
// directly; otherwise a bearer token is validated against the signing
// secret and the token store. Requests without any credential stay
// anonymous on page routes and are rejected on API routes. The resolved
// user id lives only on the request-scoped context.
func ResolveUser(userRepo repository.UserRepository, tokenRepo repository.AuthTokenRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isPublicPath(path) {
			c.Next()
			return
		}

		session := sessions.Default(c)
		if sessionUserID, ok := toUserID(session.Get(constants.ContextKeyUserID)); ok {
			c.Set(constants.ContextKeyUserID, sessionUserID)
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			// Pages degrade gracefully to anonymous; the API does not.
			if !strings.HasPrefix(path, "/api/") {
				c.Next()
				return
			}
			response.Unauthorized(c, "Authorization token required")
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(token, jwtSecret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// A cryptographically valid token is still rejected once its
		// record is gone (revoked by logout or superseded by re-login).
		if _, err := tokenRepo.FindUserToken(userID, token); err != nil {
			response.Unauthorized(c, "Token has been revoked")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			response.NotFound(c, "User not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

func toUserID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, true
	case uint:
		return uint64(id), true
	case int64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
