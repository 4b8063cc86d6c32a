package handlers

import (
	"net/http"

	ir "incident_reporting"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"` // defaults to reporter
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// sessionResponse is a safe user plus the session id, flattened, so
// non-browser clients can pick the id up from the body instead of the
// cookie.
type sessionResponse struct {
	ir.SafeUser
	SessionID string `json:"session_id"`
}

// openSession creates a session for user and sets the cookie. Returns the
// body to send, or false if session creation failed (already responded).
func (h *Handler) openSession(c *gin.Context, user ir.SafeUser) (sessionResponse, bool) {
	sessionID, err := h.services.Sessions.Create(user)
	if err != nil {
		h.respondError(c, "session_create_failed", err)
		return sessionResponse{}, false
	}
	setSessionCookie(c, sessionID)
	return sessionResponse{SafeUser: user, SessionID: sessionID}, true
}

func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), input.Username, input.Password, input.Role)
	if err != nil {
		h.respondError(c, "register_failed", err)
		return
	}

	resp, ok := h.openSession(c, *user)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Auth.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, "login_failed", err)
		return
	}

	resp, ok := h.openSession(c, *user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// logout destroys the session if one is present. Always 200: destroying an
// unknown or absent session is not an error.
func (h *Handler) logout(c *gin.Context) {
	if id := sessionIDFromRequest(c); id != "" {
		h.services.Sessions.Destroy(id)
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) currentUserInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}
