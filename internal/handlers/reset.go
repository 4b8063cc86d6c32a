package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type requestResetRequest struct {
	Username string `json:"username" binding:"required"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// requestReset issues a reset token for a known username. The token is
// returned in the body; there is no delivery channel in this service.
func (h *Handler) requestReset(c *gin.Context) {
	var input requestResetRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Auth.RequestReset(c.Request.Context(), input.Username)
	if err != nil {
		h.respondError(c, "request_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "password reset token generated",
		"token":   token,
	})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var input resetPasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.Auth.ResetPassword(c.Request.Context(), input.Token, input.NewPassword); err != nil {
		h.respondError(c, "reset_password_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset successfully"})
}
