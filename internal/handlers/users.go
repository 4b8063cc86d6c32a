package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"` // defaults to reporter
}

// listUsers returns every account as safe projections. Admin only; the
// route group enforces the gates.
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, "list_users_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// createUser is the admin-initiated variant of registration. No session is
// opened for the new account.
func (h *Handler) createUser(c *gin.Context) {
	var input createUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), input.Username, input.Password, input.Role)
	if err != nil {
		h.respondError(c, "create_user_failed", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
