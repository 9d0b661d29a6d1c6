package service

import "errors"

// Service sentinel errors. Handlers translate these into response codes.
var (
	ErrInvalidCartItem       = errors.New("invalid cart item")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrProductNotAvailable   = errors.New("product not available")
	ErrVariantInvalid        = errors.New("variant not offered for product")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrSessionInvalid        = errors.New("session invalid")
	ErrOrderNotFound         = errors.New("order not found")
	ErrDeliveryNotEligible   = errors.New("address not eligible for local delivery")
	ErrInvalidDeliveryMethod = errors.New("invalid delivery method")
	ErrPaymentLinkFailed     = errors.New("payment link creation failed")
)
