package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/lshepard/theaiwhotaughtme/pkg/config"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
	"github.com/lshepard/theaiwhotaughtme/pkg/response"
)

// BasicAuth protects admin routes with HTTP Basic credentials from config.
// When no password is configured the route is closed entirely rather than
// left open.
func BasicAuth(cfg config.AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Password == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "admin access is not configured"))
			c.Abort()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok || !constantTimeEqual(user, cfg.Username) || !constantTimeEqual(pass, cfg.Password) {
			c.Header("WWW-Authenticate", `Basic realm="Admin Area"`)
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
