package service

import (
	"fmt"

	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/constants"
	"github.com/concho-nutrition/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// Pricing computes order amounts from cart lines. All methods are pure;
// the same inputs always produce the same totals.
type Pricing struct {
	freeShippingThreshold models.Money
	standardShippingFee   models.Money
	currency              string
}

// NewPricing creates a pricing calculator from checkout config.
func NewPricing(cfg *config.CheckoutConfig) *Pricing {
	currency := "USD"
	threshold := 50.0
	fee := 6.99
	if cfg != nil {
		if cfg.Currency != "" {
			currency = cfg.Currency
		}
		if cfg.FreeShippingThreshold > 0 {
			threshold = cfg.FreeShippingThreshold
		}
		if cfg.StandardShippingFee > 0 {
			fee = cfg.StandardShippingFee
		}
	}
	return &Pricing{
		freeShippingThreshold: models.NewMoneyFromFloat(threshold),
		standardShippingFee:   models.NewMoneyFromFloat(fee),
		currency:              currency,
	}
}

// Currency returns the settlement currency.
func (p *Pricing) Currency() string {
	return p.currency
}

// FreeShippingThreshold returns the subtotal at which shipping becomes free.
func (p *Pricing) FreeShippingThreshold() models.Money {
	return p.freeShippingThreshold
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// Subtotal sums unit price times quantity over the cart lines. Each line
// prices at the subscription rate when its flag is set, with fallback to
// the one-time price.
func (p *Pricing) Subtotal(items []models.CartItem) models.Money {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil || item.Quantity <= 0 {
			continue
		}
		unit := item.Product.UnitPrice(item.IsSubscription)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(total)
}

// ShippingCost returns zero for local delivery, zero when the subtotal
// meets the free-shipping threshold (inclusive), else the flat fee.
func (p *Pricing) ShippingCost(subtotal models.Money, deliveryMethod string) models.Money {
	if deliveryMethod == constants.DeliveryMethodLocalDelivery {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	if subtotal.Cmp(p.freeShippingThreshold.Decimal) >= 0 {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	return p.standardShippingFee
}

// GrandTotal is subtotal plus shipping.
func (p *Pricing) GrandTotal(subtotal, shipping models.Money) models.Money {
	return models.NewMoneyFromDecimal(subtotal.Add(shipping.Decimal))
}

// AmountToFreeShipping returns how much more spend unlocks free shipping,
// floored at zero.
func (p *Pricing) AmountToFreeShipping(subtotal models.Money) models.Money {
	remaining := p.freeShippingThreshold.Sub(subtotal.Decimal)
	if remaining.Sign() <= 0 {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	return models.NewMoneyFromDecimal(remaining)
}

// DescribeShipping renders the shipping cost for display: "FREE" exactly
// when the cost is zero, otherwise a dollar amount.
func (p *Pricing) DescribeShipping(cost models.Money) string {
	if cost.IsZero() {
		return "FREE"
	}
	return fmt.Sprintf("$%s", cost.String())
}
