package shared

import (
	"github.com/concho-nutrition/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextString reads a string value set by middleware, responding
// with the given messages on missing or malformed values.
func GetContextString(c *gin.Context, key, missingMsg, typeInvalidMsg string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, missingMsg, nil)
		return "", false
	}
	s, ok := value.(string)
	if !ok || s == "" {
		RespondError(c, response.CodeInternal, typeInvalidMsg, nil)
		return "", false
	}
	return s, true
}
