package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieManager writes and clears the session cookie.
type CookieManager struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewCookie(name, domain string, secure bool, ttl time.Duration) *CookieManager {
	return &CookieManager{Name: name, Domain: domain, Secure: secure, TTL: ttl}
}

// SetSession stores the opaque session id. HttpOnly keeps it away from scripts.
func (m *CookieManager) SetSession(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, sid, int(m.TTL.Seconds()), "/", m.Domain, m.Secure, true)
}

// Clear expires the session cookie.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, "", -1, "/", m.Domain, m.Secure, true)
}

// Session reads the session id from the request, empty when absent.
func (m *CookieManager) Session(c *gin.Context) string {
	sid, err := c.Cookie(m.Name)
	if err != nil {
		return ""
	}
	return sid
}
