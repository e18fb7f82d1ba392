package security

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	session Session
	logger  *zap.Logger
}

func NewSessionHandler(session Session, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		session: session,
		logger:  logger,
	}
}

// RegisterRoutes mounts the session endpoints. guards run before storing a token.
func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	router.GET("/session", h.GetSession)
	router.PUT("/session", append(guards, h.StoreToken)...)
	router.DELETE("/session", h.Logout)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	_, authenticated := h.session.Token()
	display := h.session.Display()

	c.JSON(http.StatusOK, gin.H{
		"authenticated": authenticated,
		"name":          display.Name,
		"role":          display.Role,
	})
}

func (h *SessionHandler) StoreToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.session.SetToken(req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store token", "details": err.Error()})
		return
	}

	h.logger.Info("Session token stored")
	c.JSON(http.StatusOK, h.session.Display())
}

func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.session.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
