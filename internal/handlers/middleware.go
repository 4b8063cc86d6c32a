package handlers

import (
	"net/http"
	"strings"
	"time"

	ir "incident_reporting"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Session propagation: cookie first, header second; the cookie wins
	// when both are present.
	sessionCookieName = "x-session-id"
	sessionHeaderName = "X-Session-Id"

	// Cookie lifetime, 30 days. The cookie is deliberately not HTTP-only;
	// the client reads it back for header-based requests.
	sessionCookieMaxAge = 30 * 24 * 60 * 60

	ctxUserKey = "currentUser"
)

// sessionIDFromRequest extracts the opaque session identifier.
func sessionIDFromRequest(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookieName); err == nil && id != "" {
		return id
	}
	return c.GetHeader(sessionHeaderName)
}

func setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(sessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, false)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, false)
}

// sessionMiddleware resolves the request's identity, if any, and stores it
// in the Gin context. It never rejects a request itself; the gates below do.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	if user, ok := h.services.Sessions.Resolve(sessionIDFromRequest(c)); ok {
		c.Set(ctxUserKey, *user)
	}
	c.Next()
}

// currentUser returns the resolved identity stored by sessionMiddleware.
func currentUser(c *gin.Context) (ir.SafeUser, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return ir.SafeUser{}, false
	}
	u, ok := v.(ir.SafeUser)
	return u, ok
}

// requireAuthenticated aborts with 401 when no session resolved.
func (h *Handler) requireAuthenticated(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
		return
	}
	c.Next()
}

// requireAdmin aborts with 403 for authenticated non-admins and 401 when
// no identity resolved at all.
func (h *Handler) requireAdmin(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
		return
	}
	if !u.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin role required",
		})
		return
	}
	c.Next()
}

// ownerOrAdmin is the per-resource gate: the owner may act on their own
// resource, an admin on any.
func ownerOrAdmin(u ir.SafeUser, ownerID int) bool {
	return u.ID == ownerID || u.IsAdmin()
}

// requestLog records one line per API request: method, path, status,
// duration, and a generated request id.
func (h *Handler) requestLog(c *gin.Context) {
	start := time.Now()
	reqID := uuid.NewString()
	c.Next()

	if h.log == nil || !strings.HasPrefix(c.Request.URL.Path, "/api") {
		return
	}
	h.log.Infow("http_request",
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
