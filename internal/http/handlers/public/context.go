package public

import (
	handlershared "github.com/concho-nutrition/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func getSessionID(c *gin.Context) (string, bool) {
	return handlershared.GetContextString(c, "session_id", "Session token is missing or invalid", "Session ID has an unexpected type")
}
