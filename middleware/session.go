package middleware

import (
	"cafe-pos/session"

	"github.com/gin-gonic/gin"
)

// SessionCookie names the cookie that keys a client to its cart.
const SessionCookie = "pos_session"

const sessionKey = "session"

// cookieMaxAge keeps the cart cookie for one working day.
const cookieMaxAge = 12 * 60 * 60

// WithSession resolves the caller's cart session from the cookie,
// creating a fresh one (and setting the cookie) when none exists or the
// referenced session has expired.
func WithSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session
		if id, err := c.Cookie(SessionCookie); err == nil {
			sess, _ = manager.Get(id)
		}
		if sess == nil {
			sess = manager.Create()
			c.SetCookie(SessionCookie, sess.ID, cookieMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession extracts the resolved session from the request context.
func GetSession(c *gin.Context) *session.Session {
	val, _ := c.Get(sessionKey)
	return val.(*session.Session)
}
