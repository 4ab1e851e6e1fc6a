package middleware

import (
	"github.com/ryeonng/class-jpa-blog-v2/internal/models"
	"github.com/ryeonng/class-jpa-blog-v2/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const currentUserKey = "currentUser"

// Session 从 cookie 里取会话 ID，命中时把当前用户放进 context。
// 未登录的请求照常放行，由各 handler 自己决定是否拦截。
func Session(store *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		user, err := store.Load(sid)
		if err != nil {
			log.Error().Err(err).Msg("load session")
			c.Next()
			return
		}
		if user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the session user set by Session, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
