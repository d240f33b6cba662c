package middleware

import (
	"context"
	"net/http"

	"movieflix/internal/model"
	"movieflix/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// VisitorCookie names the cookie that identifies a browser
const VisitorCookie = "movieflix_visitor"

const visitorCookieMaxAge = 365 * 24 * 60 * 60

// UserLoader loads the stored user of a visitor
type UserLoader interface {
	Load(ctx context.Context, visitorID string) (*model.User, error)
}

// Visitor returns a middleware that assigns every browser a visitor ID cookie
// and attaches its session (visitor ID plus stored user) to the request
func Visitor(store UserLoader, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID, err := c.Cookie(VisitorCookie)
		if _, perr := uuid.Parse(visitorID); err != nil || perr != nil {
			visitorID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, visitorID, visitorCookieMaxAge, "/", "", secure, true)
		}

		user, err := store.Load(c.Request.Context(), visitorID)
		if err != nil {
			// 存储不可用时按未登录处理
			log.Warn().Err(err).Str("visitor", visitorID).Msg("⚠️ Failed to load stored user")
		}

		session.Set(c, &session.Context{VisitorID: visitorID, User: user})
		c.Next()
	}
}
