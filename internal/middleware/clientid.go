package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// VisitorCookie is the client-generated opaque token that view
	// deduplication keys on.
	VisitorCookie = "lg_visitor"

	visitorCookieMaxAge = 2 * 365 * 24 * 3600
	visitorContextKey   = "visitor_id"
)

// ClientID mints and persists the visitor token. A visitor arriving
// without one is not counted this request; the cookie set here makes
// the next request countable.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(VisitorCookie); err == nil && token != "" {
			c.Set(visitorContextKey, token)
			c.Next()
			return
		}

		token := uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookie, token, visitorCookieMaxAge, "/", "", false, true)
		// deliberately not stored in context: this page load stays
		// uncounted, the token only takes effect next request
		c.Next()
	}
}

// VisitorID returns the visitor token seen on this request, or "".
func VisitorID(c *gin.Context) string {
	if v, exists := c.Get(visitorContextKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
