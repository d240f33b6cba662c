package session

import (
	"github.com/gin-gonic/gin"

	"movieflix/internal/model"
)

const contextKey = "movieflix_session"

// Context is the per-request view of a visitor
type Context struct {
	VisitorID string
	User      *model.User
}

// LoggedIn reports whether a user is stored for the visitor
func (s *Context) LoggedIn() bool {
	return s != nil && s.User != nil
}

// Username returns the stored username or an empty string
func (s *Context) Username() string {
	if !s.LoggedIn() {
		return ""
	}
	return s.User.Username
}

// Set attaches the session to a gin context
func Set(c *gin.Context, s *Context) {
	c.Set(contextKey, s)
}

// From returns the session attached by the visitor middleware.
// It never returns nil.
func From(c *gin.Context) *Context {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Context); ok && s != nil {
			return s
		}
	}
	return &Context{}
}
