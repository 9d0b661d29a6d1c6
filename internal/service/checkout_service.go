package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/constants"
	"github.com/concho-nutrition/storefront/internal/logger"
	"github.com/concho-nutrition/storefront/internal/models"
	"github.com/concho-nutrition/storefront/internal/payment/square"
	"github.com/concho-nutrition/storefront/internal/queue"
	"github.com/concho-nutrition/storefront/internal/repository"

	"github.com/google/uuid"
)

// CheckoutInput is a checkout submission. IdempotencyKey is optional:
// when the client supplies one, resubmitting it replays the original
// handoff instead of creating a second order.
type CheckoutInput struct {
	SessionID      string
	Customer       CustomerInfo
	DeliveryMethod string
	ClientIP       string
	IdempotencyKey string
}

// CheckoutResult is the successful checkout handoff.
type CheckoutResult struct {
	OrderNo     string       `json:"order_no"`
	OrderID     uint         `json:"order_id"`
	CheckoutURL string       `json:"checkout_url"`
	Subtotal    models.Money `json:"subtotal"`
	Shipping    models.Money `json:"shipping"`
	Total       models.Money `json:"total"`
}

// CheckoutService turns a validated cart into a pending order and a
// Square payment link. The webhook notification and the payment link
// are not tied together transactionally: the webhook is best-effort
// analytics, while Square's order remains the system of record for the
// sale.
type CheckoutService struct {
	cartService     *CartService
	deliveryService *DeliveryService
	pricing         *Pricing
	orderRepo       repository.OrderRepository
	cartRepo        repository.CartRepository
	queueClient     *queue.Client
	squareCfg       *square.Config
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(
	cartService *CartService,
	deliveryService *DeliveryService,
	pricing *Pricing,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	queueClient *queue.Client,
	squareCfg *config.SquareConfig,
) *CheckoutService {
	var cfg *square.Config
	if squareCfg != nil {
		cfg = &square.Config{
			AccessToken: squareCfg.AccessToken,
			LocationID:  squareCfg.LocationID,
			APIBaseURL:  squareCfg.APIBaseURL,
			RedirectURL: squareCfg.RedirectURL,
			TimeoutMS:   squareCfg.TimeoutMS,
		}
	}
	return &CheckoutService{
		cartService:     cartService,
		deliveryService: deliveryService,
		pricing:         pricing,
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		queueClient:     queueClient,
		squareCfg:       cfg,
	}
}

// Submit runs the checkout: validate customer fields, price the cart,
// persist the order, fire the best-effort webhook, and create the
// Square payment link. The cart only clears after the payment link
// exists, so a failed handoff leaves the cart intact for retry.
func (s *CheckoutService) Submit(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.SessionID == "" {
		return nil, ErrSessionInvalid
	}
	if validationErr := ValidateCustomerInfo(&input.Customer); validationErr != nil {
		return nil, validationErr
	}

	idempotencyKey := strings.TrimSpace(input.IdempotencyKey)
	if idempotencyKey != "" {
		if replayed, err := s.replaySubmission(input.SessionID, idempotencyKey); replayed != nil || err != nil {
			return replayed, err
		}
	} else {
		idempotencyKey = uuid.NewString()
	}

	items, err := s.cartService.loadLines(input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	// Local delivery re-validates against the submitted address rather
	// than trusting the session decision. An ineligible address falls
	// back to shipping.
	method := s.deliveryService.ResolveMethod(input.DeliveryMethod, input.Customer.City, input.Customer.State)
	shippingLabel := s.deliveryService.MethodLabel(method)

	subtotal := s.pricing.Subtotal(items)
	shipping := s.pricing.ShippingCost(subtotal, method)
	total := s.pricing.GrandTotal(subtotal, shipping)

	now := time.Now()
	order := &models.Order{
		OrderNo:        generateOrderNo(now),
		SessionID:      input.SessionID,
		Status:         constants.OrderStatusPendingPayment,
		Currency:       s.pricing.Currency(),
		Email:          strings.TrimSpace(input.Customer.Email),
		FirstName:      strings.TrimSpace(input.Customer.FirstName),
		LastName:       strings.TrimSpace(input.Customer.LastName),
		Address:        strings.TrimSpace(input.Customer.Address),
		City:           strings.TrimSpace(input.Customer.City),
		State:          strings.TrimSpace(input.Customer.State),
		ZipCode:        strings.TrimSpace(input.Customer.ZipCode),
		DeliveryMethod: method,
		ShippingLabel:  shippingLabel,
		SubtotalAmount: subtotal,
		ShippingAmount: shipping,
		TotalAmount:    total,
		IdempotencyKey: idempotencyKey,
		ClientIP:       input.ClientIP,
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		unit := item.Product.UnitPrice(item.IsSubscription)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:      item.ProductID,
			Title:          item.Product.Title,
			Variant:        item.Variant,
			UnitPrice:      unit,
			Quantity:       item.Quantity,
			TotalPrice:     models.NewMoneyFromDecimal(unit.Mul(decimalFromInt(item.Quantity))),
			IsSubscription: item.IsSubscription,
		})
	}

	if err := s.orderRepo.Create(order, orderItems); err != nil {
		return nil, err
	}
	order.Items = orderItems

	// Best-effort notification. Failure to enqueue is logged and
	// ignored; nothing downstream depends on it.
	if err := s.queueClient.EnqueueOrderWebhook(queue.OrderWebhookPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("checkout_enqueue_order_webhook_failed", "order_no", order.OrderNo, "error", err)
	}

	link, err := s.createPaymentLink(ctx, order, orderItems, shippingLabel)
	if err != nil {
		logger.Warnw("checkout_payment_link_failed", "order_no", order.OrderNo, "error", err)
		if updateErr := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCanceled, nil); updateErr != nil {
			logger.Warnw("checkout_cancel_order_failed", "order_no", order.OrderNo, "error", updateErr)
		}
		return nil, ErrPaymentLinkFailed
	}

	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusPendingPayment, map[string]interface{}{
		"payment_link_id":  link.PaymentLinkID,
		"payment_link_url": link.URL,
	}); err != nil {
		logger.Warnw("checkout_save_payment_link_failed", "order_no", order.OrderNo, "error", err)
	}

	if err := s.cartRepo.ClearBySession(input.SessionID); err != nil {
		logger.Warnw("checkout_clear_cart_failed", "session_id", input.SessionID, "error", err)
	}
	s.deliveryService.Forget(input.SessionID)

	return &CheckoutResult{
		OrderNo:     order.OrderNo,
		OrderID:     order.ID,
		CheckoutURL: link.URL,
		Subtotal:    subtotal,
		Shipping:    shipping,
		Total:       total,
	}, nil
}

// replaySubmission resolves a client-supplied idempotency key against
// prior orders. A matching order with a saved payment link answers with
// the original handoff; a match that never got its link means the
// earlier attempt failed and the key is burned, so the client must
// retry with a fresh one. (nil, nil) means the key is unused.
func (s *CheckoutService) replaySubmission(sessionID, key string) (*CheckoutResult, error) {
	existing, err := s.orderRepo.GetByIdempotencyKey(key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if existing.SessionID != sessionID {
		return nil, ErrSessionInvalid
	}
	if existing.PaymentLinkURL == "" {
		return nil, ErrPaymentLinkFailed
	}
	logger.Infow("checkout_replayed", "order_no", existing.OrderNo)
	return &CheckoutResult{
		OrderNo:     existing.OrderNo,
		OrderID:     existing.ID,
		CheckoutURL: existing.PaymentLinkURL,
		Subtotal:    existing.SubtotalAmount,
		Shipping:    existing.ShippingAmount,
		Total:       existing.TotalAmount,
	}, nil
}

// GetOrder returns a session's order by its public number, for the
// post-payment status page. Orders of other sessions read as not found.
func (s *CheckoutService) GetOrder(sessionID, orderNo string) (*models.Order, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || order.SessionID != sessionID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *CheckoutService) createPaymentLink(ctx context.Context, order *models.Order, items []models.OrderItem, shippingLabel string) (*square.CreateResult, error) {
	lineItems := make([]square.LineItem, 0, len(items))
	for _, item := range items {
		name := item.Title
		if item.Variant != "" {
			name = fmt.Sprintf("%s (%s)", item.Title, item.Variant)
		}
		if item.IsSubscription {
			name = name + " [Subscribe & Save]"
		}
		lineItems = append(lineItems, square.LineItem{
			Name:     name,
			Quantity: item.Quantity,
			Amount:   item.UnitPrice.String(),
			Currency: order.Currency,
		})
	}
	return square.CreatePaymentLink(ctx, s.squareCfg, square.CreateInput{
		IdempotencyKey: order.IdempotencyKey,
		OrderNo:        order.OrderNo,
		Currency:       order.Currency,
		LineItems:      lineItems,
		ShippingAmount: order.ShippingAmount.String(),
		ShippingLabel:  shippingLabel,
		BuyerEmail:     order.Email,
		BuyerAddress: &square.BuyerAddress{
			FirstName:    order.FirstName,
			LastName:     order.LastName,
			AddressLine1: order.Address,
			Locality:     order.City,
			State:        order.State,
			PostalCode:   order.ZipCode,
			CountryCode:  "US",
		},
	})
}

// generateOrderNo builds a sortable public order number.
func generateOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("CN%s%s", now.Format("20060102150405"), suffix)
}
