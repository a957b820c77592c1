package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/apierror"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	SessionKey = "session"
	TokenKey   = "session_token"
)

// SessionAuth resolves the Bearer token against the session store on every
// protected route, and slides the session expiry on each hit.
func SessionAuth(store session.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentification requise"))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		sess, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Session invalide ou expirée"))
			return
		}
		_ = store.Refresh(c.Request.Context(), token, ttl)

		c.Set(SessionKey, sess)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// RequireRole rejects requests whose session role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		sess, ok := c.MustGet(SessionKey).(*session.Session)
		if !ok || !allowed[sess.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permissions insuffisantes"))
			return
		}
		c.Next()
	}
}

// GetSession is a helper to retrieve the typed session from the Gin context.
func GetSession(c *gin.Context) *session.Session {
	sess, _ := c.MustGet(SessionKey).(*session.Session)
	return sess
}

// GetToken returns the raw bearer token of the current request.
func GetToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
