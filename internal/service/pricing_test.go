package service

import (
	"testing"

	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/constants"
	"github.com/concho-nutrition/storefront/internal/models"
)

func testPricing() *Pricing {
	return NewPricing(&config.CheckoutConfig{
		Currency:              "USD",
		FreeShippingThreshold: 50.00,
		StandardShippingFee:   6.99,
	})
}

func cartLine(price float64, quantity int, subscription bool, subscriptionPrice *float64) models.CartItem {
	product := &models.Product{
		PriceAmount: models.NewMoneyFromFloat(price),
		Currency:    "USD",
		IsActive:    true,
	}
	if subscriptionPrice != nil {
		sub := models.NewMoneyFromFloat(*subscriptionPrice)
		product.SubscriptionPrice = &sub
	}
	return models.CartItem{
		ProductID:      1,
		Quantity:       quantity,
		IsSubscription: subscription,
		Product:        product,
	}
}

func TestSubtotalSumsLines(t *testing.T) {
	pricing := testPricing()
	items := []models.CartItem{
		cartLine(10.00, 2, false, nil),
		cartLine(15.00, 1, false, nil),
	}
	subtotal := pricing.Subtotal(items)
	if subtotal.String() != "35.00" {
		t.Fatalf("subtotal want 35.00 got %s", subtotal.String())
	}
}

func TestSubtotalUsesSubscriptionPrice(t *testing.T) {
	pricing := testPricing()
	subPrice := 8.00
	items := []models.CartItem{
		cartLine(10.00, 3, true, &subPrice),
	}
	subtotal := pricing.Subtotal(items)
	if subtotal.String() != "24.00" {
		t.Fatalf("subscription subtotal want 24.00 got %s", subtotal.String())
	}
}

func TestSubtotalSubscriptionFallsBackToOneTimePrice(t *testing.T) {
	pricing := testPricing()
	items := []models.CartItem{
		cartLine(10.00, 2, true, nil),
	}
	subtotal := pricing.Subtotal(items)
	if subtotal.String() != "20.00" {
		t.Fatalf("fallback subtotal want 20.00 got %s", subtotal.String())
	}
}

func TestShippingCostThresholdBoundary(t *testing.T) {
	pricing := testPricing()
	cases := []struct {
		subtotal float64
		want     string
	}{
		{49.99, "6.99"},
		{50.00, "0.00"},
		{50.01, "0.00"},
	}
	for _, tc := range cases {
		cost := pricing.ShippingCost(models.NewMoneyFromFloat(tc.subtotal), constants.DeliveryMethodShipping)
		if cost.String() != tc.want {
			t.Fatalf("subtotal %.2f shipping want %s got %s", tc.subtotal, tc.want, cost.String())
		}
	}
}

func TestLocalDeliveryAlwaysFree(t *testing.T) {
	pricing := testPricing()
	for _, subtotal := range []float64{0, 0.01, 49.99, 50.00, 500.00} {
		cost := pricing.ShippingCost(models.NewMoneyFromFloat(subtotal), constants.DeliveryMethodLocalDelivery)
		if !cost.IsZero() {
			t.Fatalf("local delivery at subtotal %.2f must be free, got %s", subtotal, cost.String())
		}
	}
}

func TestGrandTotalConsistency(t *testing.T) {
	pricing := testPricing()
	subtotal := models.NewMoneyFromFloat(42.50)
	shipping := pricing.ShippingCost(subtotal, constants.DeliveryMethodShipping)
	total := pricing.GrandTotal(subtotal, shipping)
	if total.String() != "49.49" {
		t.Fatalf("grand total want 49.49 got %s", total.String())
	}
}

func TestDescribeShippingFreeExactlyWhenZero(t *testing.T) {
	pricing := testPricing()
	if got := pricing.DescribeShipping(models.NewMoneyFromFloat(0)); got != "FREE" {
		t.Fatalf("zero cost want FREE got %s", got)
	}
	if got := pricing.DescribeShipping(models.NewMoneyFromFloat(6.99)); got != "$6.99" {
		t.Fatalf("nonzero cost want $6.99 got %s", got)
	}
	if got := pricing.DescribeShipping(models.NewMoneyFromFloat(0.01)); got == "FREE" {
		t.Fatalf("one cent must not describe as FREE")
	}
}

func TestAmountToFreeShipping(t *testing.T) {
	pricing := testPricing()

	gap := pricing.AmountToFreeShipping(models.NewMoneyFromFloat(44.99))
	if gap.String() != "5.01" {
		t.Fatalf("gap want 5.01 got %s", gap.String())
	}

	// Adding a ten dollar item closes the gap entirely.
	gap = pricing.AmountToFreeShipping(models.NewMoneyFromFloat(54.99))
	if !gap.IsZero() {
		t.Fatalf("gap past threshold want 0 got %s", gap.String())
	}

	gap = pricing.AmountToFreeShipping(models.NewMoneyFromFloat(50.00))
	if !gap.IsZero() {
		t.Fatalf("gap at threshold want 0 got %s", gap.String())
	}
}
