package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/models"
)

func sampleOrder() *models.Order {
	unit := models.NewMoneyFromFloat(19.99)
	return &models.Order{
		OrderNo:        "CN20260831TEST1234",
		Email:          "jane@example.com",
		FirstName:      "Jane",
		LastName:       "Doe",
		Address:        "123 Main St",
		City:           "San Angelo",
		State:          "TX",
		ZipCode:        "76901",
		Currency:       "USD",
		ShippingLabel:  "Standard Shipping",
		SubtotalAmount: models.NewMoneyFromFloat(39.98),
		ShippingAmount: models.NewMoneyFromFloat(6.99),
		TotalAmount:    models.NewMoneyFromFloat(46.97),
		CreatedAt:      time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{
				Title:          "Whey Protein",
				Variant:        "Chocolate",
				UnitPrice:      unit,
				Quantity:       2,
				TotalPrice:     models.NewMoneyFromFloat(39.98),
				IsSubscription: true,
			},
		},
	}
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(sampleOrder())
	if payload == nil {
		t.Fatalf("payload must not be nil")
	}
	if payload.OrderNo != "CN20260831TEST1234" {
		t.Fatalf("unexpected order no: %s", payload.OrderNo)
	}
	if len(payload.Lines) != 1 {
		t.Fatalf("want 1 line got %d", len(payload.Lines))
	}
	line := payload.Lines[0]
	if line.Flavor != "Chocolate" || !line.IsSubscription {
		t.Fatalf("line snapshot wrong: %+v", line)
	}
	if line.UnitPrice != "19.99" || line.LineTotal != "39.98" {
		t.Fatalf("line amounts wrong: %+v", line)
	}
	if payload.GrandTotal != "46.97" {
		t.Fatalf("grand total want 46.97 got %s", payload.GrandTotal)
	}
	if payload.CreatedAt != "2026-08-31T12:00:00Z" {
		t.Fatalf("timestamp must be RFC3339 UTC, got %s", payload.CreatedAt)
	}
}

func TestBuildPayloadNilOrder(t *testing.T) {
	if got := BuildPayload(nil); got != nil {
		t.Fatalf("nil order must build nil payload, got %+v", got)
	}
}

func TestSendPostsJSON(t *testing.T) {
	var received OrderWebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body failed: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := NewOrderWebhook(&config.WebhookConfig{Enabled: true, URL: server.URL})
	if err := webhook.Send(context.Background(), BuildPayload(sampleOrder())); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if received.OrderNo != "CN20260831TEST1234" {
		t.Fatalf("server did not receive payload, got %+v", received)
	}
}

func TestSendNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	webhook := NewOrderWebhook(&config.WebhookConfig{Enabled: true, URL: server.URL})
	if err := webhook.Send(context.Background(), BuildPayload(sampleOrder())); err == nil {
		t.Fatalf("non-2xx response must be an error")
	}
}

func TestSendDisabledIsNoOp(t *testing.T) {
	webhook := NewOrderWebhook(&config.WebhookConfig{Enabled: false})
	if webhook.Enabled() {
		t.Fatalf("webhook without url must be disabled")
	}
	if err := webhook.Send(context.Background(), BuildPayload(sampleOrder())); err != nil {
		t.Fatalf("disabled send must be a no-op: %v", err)
	}
}
