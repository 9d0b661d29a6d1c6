package public

import (
	"errors"

	"github.com/concho-nutrition/storefront/internal/http/response"
	"github.com/concho-nutrition/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "Cart item is invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "Quantity must be at least 1"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "Product is not available"},
	{target: service.ErrVariantInvalid, code: response.CodeBadRequest, msg: "Selected flavor is not offered for this product"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "Product is not in the cart"},
	{target: service.ErrSessionInvalid, code: response.CodeUnauthorized, msg: "Session token is missing or invalid"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "Your cart is empty"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "Product is not available"},
	{target: service.ErrSessionInvalid, code: response.CodeUnauthorized, msg: "Session token is missing or invalid"},
	{target: service.ErrPaymentLinkFailed, code: response.CodeInternal, msg: "There was an issue connecting to the payment processor. Please try again."},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "Order not found"},
	{target: service.ErrSessionInvalid, code: response.CodeUnauthorized, msg: "Session token is missing or invalid"},
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "Order lookup failed")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Cart update failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.ErrorWithData(c, response.CodeBadRequest, validationErr.Message, gin.H{
			"missing_fields": validationErr.MissingFields,
		})
		return
	}
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "Checkout failed")
}
