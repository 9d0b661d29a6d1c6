package service

import (
	"strings"
	"time"

	"github.com/concho-nutrition/storefront/internal/constants"
	"github.com/concho-nutrition/storefront/internal/models"
	"github.com/concho-nutrition/storefront/internal/repository"
)

// CartLineDetail is one cart line with its pricing snapshot.
type CartLineDetail struct {
	ID             uint            `json:"id"`
	ProductID      uint            `json:"product_id"`
	Variant        string          `json:"variant,omitempty"`
	IsSubscription bool            `json:"is_subscription"`
	Quantity       int             `json:"quantity"`
	UnitPrice      models.Money    `json:"unit_price"`
	LineTotal      models.Money    `json:"line_total"`
	Currency       string          `json:"currency"`
	Product        *models.Product `json:"product"`
}

// CartTotals are the figures derived from the current cart lines.
type CartTotals struct {
	ItemCount            int          `json:"item_count"`
	Subtotal             models.Money `json:"subtotal"`
	ShippingCost         models.Money `json:"shipping_cost"`
	ShippingLabel        string       `json:"shipping_label"`
	GrandTotal           models.Money `json:"grand_total"`
	AmountToFreeShipping models.Money `json:"amount_to_free_shipping"`
	FreeShippingEligible bool         `json:"free_shipping_eligible"`
}

// CartDetail is the full cart response payload.
type CartDetail struct {
	Lines  []CartLineDetail `json:"lines"`
	Totals CartTotals       `json:"totals"`
}

// AddCartItemInput is the add-to-cart request.
type AddCartItemInput struct {
	SessionID      string
	ProductID      uint
	Variant        string
	IsSubscription bool
	Quantity       int
}

// CartService owns the session cart lines and their derived totals.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     *Pricing
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, pricing *Pricing) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// Get returns the cart lines and derived totals for a session. Lines
// whose product has been retired are dropped on read. Totals assume the
// shipping delivery method; local delivery pricing applies at checkout.
func (s *CartService) Get(sessionID string) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	items, err := s.loadLines(sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(items), nil
}

// loadLines fetches the session cart and prunes lines pointing at
// retired products.
func (s *CartService) loadLines(sessionID string) ([]models.CartItem, error) {
	items, err := s.cartRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
			item.Product = p
		}
		if product == nil || !product.IsActive {
			_ = s.cartRepo.Delete(item.ID)
			continue
		}
		kept = append(kept, item)
	}
	return kept, nil
}

func (s *CartService) buildDetail(items []models.CartItem) *CartDetail {
	lines := make([]CartLineDetail, 0, len(items))
	itemCount := 0
	for _, item := range items {
		unit := item.Product.UnitPrice(item.IsSubscription)
		lines = append(lines, CartLineDetail{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Variant:        item.Variant,
			IsSubscription: item.IsSubscription,
			Quantity:       item.Quantity,
			UnitPrice:      unit,
			LineTotal:      models.NewMoneyFromDecimal(unit.Mul(decimalFromInt(item.Quantity))),
			Currency:       item.Product.Currency,
			Product:        item.Product,
		})
		itemCount += item.Quantity
	}

	subtotal := s.pricing.Subtotal(items)
	shipping := s.pricing.ShippingCost(subtotal, constants.DeliveryMethodShipping)
	grand := s.pricing.GrandTotal(subtotal, shipping)

	return &CartDetail{
		Lines: lines,
		Totals: CartTotals{
			ItemCount:            itemCount,
			Subtotal:             subtotal,
			ShippingCost:         shipping,
			ShippingLabel:        s.pricing.DescribeShipping(shipping),
			GrandTotal:           grand,
			AmountToFreeShipping: s.pricing.AmountToFreeShipping(subtotal),
			FreeShippingEligible: shipping.IsZero() && len(items) > 0,
		},
	}
}

// Add puts a product in the cart. A line with the same identity
// (product, variant, subscription flag) absorbs the quantity instead of
// duplicating.
func (s *CartService) Add(input AddCartItemInput) (*CartDetail, error) {
	if input.SessionID == "" {
		return nil, ErrSessionInvalid
	}
	if input.ProductID == 0 {
		return nil, ErrInvalidCartItem
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive || product.Stock <= 0 {
		return nil, ErrProductNotAvailable
	}

	variant := strings.TrimSpace(input.Variant)
	if !product.HasFlavor(variant) {
		return nil, ErrVariantInvalid
	}

	existing, err := s.cartRepo.FindByIdentity(input.SessionID, input.ProductID, variant, input.IsSubscription)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += input.Quantity
		existing.UpdatedAt = time.Now()
		if err := s.cartRepo.Save(existing); err != nil {
			return nil, err
		}
		return s.Get(input.SessionID)
	}

	now := time.Now()
	item := &models.CartItem{
		SessionID:      input.SessionID,
		ProductID:      input.ProductID,
		Variant:        variant,
		IsSubscription: input.IsSubscription,
		Quantity:       input.Quantity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return s.Get(input.SessionID)
}

// UpdateQuantity sets the quantity on every line of a product. The key
// is the product alone, so all variants of that product move together.
// Quantities below one clamp to one.
func (s *CartService) UpdateQuantity(sessionID string, productID uint, quantity int) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	if quantity < 1 {
		quantity = 1
	}
	affected, err := s.cartRepo.UpdateQuantityByProduct(sessionID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.Get(sessionID)
}

// Remove deletes every line of a product regardless of variant or
// subscription flag. Removing an absent product is a no-op.
func (s *CartService) Remove(sessionID string, productID uint) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	if err := s.cartRepo.DeleteByProduct(sessionID, productID); err != nil {
		return nil, err
	}
	return s.Get(sessionID)
}

// ToggleSubscription flips the subscription flag in place on every line
// of a product. When a flipped line lands on the identity of another
// line the two merge, summing quantities, so the cart never holds two
// lines with the same identity.
func (s *CartService) ToggleSubscription(sessionID string, productID uint) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}

	items, err := s.cartRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}

	type identity struct {
		variant      string
		subscription bool
	}
	merged := make(map[identity]*models.CartItem)
	order := make([]identity, 0)
	for i := range items {
		item := items[i]
		if item.ProductID != productID {
			continue
		}
		item.IsSubscription = !item.IsSubscription
		key := identity{variant: item.Variant, subscription: item.IsSubscription}
		if keep, ok := merged[key]; ok {
			keep.Quantity += item.Quantity
			continue
		}
		copied := item
		merged[key] = &copied
		order = append(order, key)
	}
	if len(order) == 0 {
		return nil, ErrCartItemNotFound
	}

	// Flipping can land a line on another line's identity, so the
	// product's rows are rewritten wholesale instead of saved in place.
	// Original creation times carry over to keep cart positions stable.
	if err := s.cartRepo.DeleteByProduct(sessionID, productID); err != nil {
		return nil, err
	}
	now := time.Now()
	for _, key := range order {
		item := merged[key]
		fresh := &models.CartItem{
			SessionID:      sessionID,
			ProductID:      productID,
			Variant:        item.Variant,
			IsSubscription: item.IsSubscription,
			Quantity:       item.Quantity,
			CreatedAt:      item.CreatedAt,
			UpdatedAt:      now,
		}
		if err := s.cartRepo.Create(fresh); err != nil {
			return nil, err
		}
	}
	return s.Get(sessionID)
}

// Clear empties the session cart.
func (s *CartService) Clear(sessionID string) error {
	if sessionID == "" {
		return ErrSessionInvalid
	}
	return s.cartRepo.ClearBySession(sessionID)
}
