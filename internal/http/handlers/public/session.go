package public

import (
	"time"

	"github.com/concho-nutrition/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateSession issues a fresh cart session token.
func (h *Handler) CreateSession(c *gin.Context) {
	sessionID, token, expiresAt, err := h.SessionService.Issue()
	if err != nil {
		respondError(c, response.CodeInternal, "Session creation failed", err)
		return
	}
	response.Success(c, gin.H{
		"session_id": sessionID,
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
