package handlers

import (
	"errors"
	"net/http"

	"incident_reporting/internal/logger"
	"incident_reporting/internal/repository"
	"incident_reporting/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLog)

	// Health endpoint
	router.GET("/health", h.health)

	// Every /api route runs the session middleware so handlers and gates
	// see the resolved identity, if any.
	api := router.Group("/api", h.sessionMiddleware)
	{
		h.registerAuthRoutes(api)
		h.registerUserRoutes(api)
		h.registerReportRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.POST("/logout", h.logout)
	api.GET("/user", h.currentUserInfo)

	reset := api.Group("/auth")
	{
		reset.POST("/request-reset", h.requestReset)
		reset.POST("/reset-password", h.resetPassword)
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", h.requireAuthenticated, h.requireAdmin)
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
	}
}

func (h *Handler) registerReportRoutes(api *gin.RouterGroup) {
	reports := api.Group("/reports", h.requireAuthenticated)
	{
		reports.GET("", h.listReports)
		reports.POST("", h.createReport)
		reports.GET("/:id", h.getReport)
		reports.PATCH("/:id/status", h.requireAdmin, h.updateReportStatus)
		reports.DELETE("/:id", h.requireAdmin, h.deleteReport)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled, true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// errorStatus maps domain errors to HTTP statuses. Unknown errors are
// internal failures and must not leak detail to the client.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrPasswordTooLong),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, repository.ErrDuplicateUsername):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidResetToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Domain failures carry their own
// message; everything else gets a generic one and an error-level log line.
func (h *Handler) respondError(c *gin.Context, logKey string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	if h.log != nil {
		h.log.Infow(logKey, "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
