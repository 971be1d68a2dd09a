package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/printhaus/storefront/internal/cart"
)

// SessionHeader carries the cart session identifier. The server mints one on
// first contact and echoes it back; the client repeats it on every request.
const SessionHeader = "X-Cart-Session"

const cartSessionContextKey = "cart_session_id"

// CartSession attaches a cart session ID to every request, creating one
// when the client has none yet
func CartSession(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = carts.NewSessionID()
		}

		c.Set(cartSessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetCartSessionID returns the request's cart session identifier
func GetCartSessionID(c *gin.Context) (string, bool) {
	val, ok := c.Get(cartSessionContextKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
