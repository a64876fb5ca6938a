package security

import (
	"net/http"
	"strings"

	"github.com/JacobHeater/upsign/tools/errs"
	jwtlib "github.com/JacobHeater/upsign/tools/security"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware; handlers read the user id via UserID.
const (
	CtxUserIDKey = "userId"
	CtxTokenKey  = "authorization"
)

type Options struct {
	JWT        jwtlib.Options
	CookieName string // session token cookie, checked after the header
}

func Middleware(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if authz := strings.TrimSpace(c.GetHeader("Authorization")); authz != "" {
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token = strings.TrimSpace(authz[len("bearer "):])
			}
		}
		if token == "" && opts.CookieName != "" {
			if cookie, err := c.Cookie(opts.CookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrTokenMissing)
			return
		}

		claims, err := jwtlib.Verify(opts.JWT, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrTokenInvalid)
			return
		}
		userID := claims.UserID()
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrTokenInvalid)
			return
		}

		c.Set(CtxTokenKey, token)
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Middleware.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
