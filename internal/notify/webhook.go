package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/models"
)

const defaultWebhookTimeout = 10 * time.Second

// OrderWebhookLine is one order line in the webhook payload.
type OrderWebhookLine struct {
	Product        string `json:"product"`
	Flavor         string `json:"flavor,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	LineTotal      string `json:"line_total"`
	IsSubscription bool   `json:"is_subscription"`
}

// OrderWebhookPayload is the best-effort order notification body.
type OrderWebhookPayload struct {
	OrderNo       string             `json:"order_no"`
	Email         string             `json:"email"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	ZipCode       string             `json:"zip_code"`
	Lines         []OrderWebhookLine `json:"lines"`
	Subtotal      string             `json:"subtotal"`
	ShippingCost  string             `json:"shipping_cost"`
	ShippingLabel string             `json:"shipping_label"`
	GrandTotal    string             `json:"grand_total"`
	Currency      string             `json:"currency"`
	CreatedAt     string             `json:"created_at"`
}

// OrderWebhook posts order notifications to a configured endpoint.
// Delivery is best-effort: failures are returned for logging but never
// retried and never block checkout.
type OrderWebhook struct {
	url     string
	enabled bool
	client  *http.Client
}

// NewOrderWebhook creates an order webhook notifier.
func NewOrderWebhook(cfg *config.WebhookConfig) *OrderWebhook {
	url := ""
	enabled := false
	timeout := defaultWebhookTimeout
	if cfg != nil {
		url = strings.TrimSpace(cfg.URL)
		enabled = cfg.Enabled && url != ""
		if cfg.TimeoutMS > 0 {
			timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
		}
	}
	return &OrderWebhook{
		url:     url,
		enabled: enabled,
		client:  &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the notifier has a destination.
func (w *OrderWebhook) Enabled() bool {
	return w != nil && w.enabled
}

// BuildPayload assembles the webhook body from a persisted order.
func BuildPayload(order *models.Order) *OrderWebhookPayload {
	if order == nil {
		return nil
	}
	lines := make([]OrderWebhookLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderWebhookLine{
			Product:        item.Title,
			Flavor:         item.Variant,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice.String(),
			LineTotal:      item.TotalPrice.String(),
			IsSubscription: item.IsSubscription,
		})
	}
	return &OrderWebhookPayload{
		OrderNo:       order.OrderNo,
		Email:         order.Email,
		FirstName:     order.FirstName,
		LastName:      order.LastName,
		Address:       order.Address,
		City:          order.City,
		State:         order.State,
		ZipCode:       order.ZipCode,
		Lines:         lines,
		Subtotal:      order.SubtotalAmount.String(),
		ShippingCost:  order.ShippingAmount.String(),
		ShippingLabel: order.ShippingLabel,
		GrandTotal:    order.TotalAmount.String(),
		Currency:      order.Currency,
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Send delivers one payload. A non-2xx response counts as failure.
func (w *OrderWebhook) Send(ctx context.Context, payload *OrderWebhookPayload) error {
	if !w.Enabled() || payload == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
