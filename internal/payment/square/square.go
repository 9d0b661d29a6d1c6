package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("square config invalid")
	ErrRequestFailed   = errors.New("square request failed")
	ErrResponseInvalid = errors.New("square response invalid")
)

const (
	defaultAPIBaseURL = "https://connect.squareup.com"
	defaultTimeout    = 12 * time.Second
	apiVersion        = "2024-06-04"
)

// Config holds the Square Payment Links credentials and endpoints.
type Config struct {
	AccessToken string `json:"access_token"`
	LocationID  string `json:"location_id"`
	APIBaseURL  string `json:"api_base_url"`
	RedirectURL string `json:"redirect_url"`
	TimeoutMS   int    `json:"timeout_ms"`
}

// LineItem is one order line sent to Square.
type LineItem struct {
	Name     string
	Quantity int
	Amount   string
	Currency string
}

// BuyerAddress prefills the hosted checkout page's contact form so the
// customer does not retype what they already entered.
type BuyerAddress struct {
	FirstName    string
	LastName     string
	AddressLine1 string
	Locality     string
	State        string
	PostalCode   string
	CountryCode  string
}

// CreateInput describes the payment link to create.
type CreateInput struct {
	IdempotencyKey string
	OrderNo        string
	Currency       string
	LineItems      []LineItem
	ShippingAmount string
	ShippingLabel  string
	RedirectURL    string
	BuyerEmail     string
	BuyerAddress   *BuyerAddress
}

// CreateResult is the created payment link.
type CreateResult struct {
	PaymentLinkID string
	OrderID       string
	URL           string
	Raw           map[string]interface{}
}

func (c *Config) normalize() {
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	c.LocationID = strings.TrimSpace(c.LocationID)
	c.RedirectURL = strings.TrimSpace(c.RedirectURL)
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
}

// ParseConfig builds a Config from loosely typed settings.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty config", ErrConfigInvalid)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal config failed", ErrConfigInvalid)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal config failed", ErrConfigInvalid)
	}
	cfg.normalize()
	return &cfg, nil
}

// ValidateConfig checks the config is usable.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return fmt.Errorf("%w: access_token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.LocationID) == "" {
		return fmt.Errorf("%w: location_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return fmt.Errorf("%w: api_base_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.APIBaseURL)); err != nil {
		return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// CreatePaymentLink creates a hosted checkout page for the order and
// returns its redirect URL. A response without a URL is an error: the
// checkout cannot proceed without somewhere to send the customer.
func CreatePaymentLink(ctx context.Context, cfg *Config, input CreateInput) (*CreateResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(input.IdempotencyKey) == "" {
		return nil, fmt.Errorf("%w: idempotency_key is required", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrConfigInvalid)
	}
	if len(input.LineItems) == 0 {
		return nil, fmt.Errorf("%w: line_items is empty", ErrConfigInvalid)
	}

	lineItems := make([]map[string]interface{}, 0, len(input.LineItems)+1)
	for _, item := range input.LineItems {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line item quantity must be positive", ErrConfigInvalid)
		}
		minor, err := toMinorAmount(item.Amount)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, map[string]interface{}{
			"name":     item.Name,
			"quantity": strconv.Itoa(item.Quantity),
			"base_price_money": map[string]interface{}{
				"amount":   minor,
				"currency": currency,
			},
		})
	}
	if label := strings.TrimSpace(input.ShippingLabel); label != "" && strings.TrimSpace(input.ShippingAmount) != "" {
		minor, err := toMinorAmount(input.ShippingAmount)
		if err != nil {
			return nil, err
		}
		if minor > 0 {
			lineItems = append(lineItems, map[string]interface{}{
				"name":     label,
				"quantity": "1",
				"base_price_money": map[string]interface{}{
					"amount":   minor,
					"currency": currency,
				},
			})
		}
	}

	redirectURL := strings.TrimSpace(input.RedirectURL)
	if redirectURL == "" {
		redirectURL = cfg.RedirectURL
	}

	payload := map[string]interface{}{
		"idempotency_key": strings.TrimSpace(input.IdempotencyKey),
		"order": map[string]interface{}{
			"location_id":  cfg.LocationID,
			"reference_id": strings.TrimSpace(input.OrderNo),
			"line_items":   lineItems,
		},
	}
	checkoutOptions := map[string]interface{}{}
	if redirectURL != "" {
		checkoutOptions["redirect_url"] = redirectURL
	}
	if len(checkoutOptions) > 0 {
		payload["checkout_options"] = checkoutOptions
	}
	prePopulated := map[string]interface{}{}
	if email := strings.TrimSpace(input.BuyerEmail); email != "" {
		prePopulated["buyer_email"] = email
	}
	if address := buyerAddressPayload(input.BuyerAddress); address != nil {
		prePopulated["buyer_address"] = address
	}
	if len(prePopulated) > 0 {
		payload["pre_populated_data"] = prePopulated
	}

	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodPost, "/v2/online-checkout/payment-links", payload)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: create payment link status %d", ErrResponseInvalid, statusCode)
	}

	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	link, ok := raw["payment_link"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing payment_link", ErrResponseInvalid)
	}

	result := &CreateResult{Raw: raw}
	result.PaymentLinkID = strings.TrimSpace(readString(link, "id"))
	result.URL = strings.TrimSpace(readString(link, "url"))
	result.OrderID = strings.TrimSpace(readString(link, "order_id"))
	if result.URL == "" {
		return nil, fmt.Errorf("%w: missing checkout url", ErrResponseInvalid)
	}
	return result, nil
}

// buyerAddressPayload maps the buyer address into Square's wire shape,
// skipping empty fields. Nil when nothing is set.
func buyerAddressPayload(address *BuyerAddress) map[string]interface{} {
	if address == nil {
		return nil
	}
	payload := map[string]interface{}{}
	set := func(key, value string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			payload[key] = trimmed
		}
	}
	set("first_name", address.FirstName)
	set("last_name", address.LastName)
	set("address_line_1", address.AddressLine1)
	set("locality", address.Locality)
	set("administrative_district_level_1", address.State)
	set("postal_code", address.PostalCode)
	set("country", address.CountryCode)
	if len(payload) == 0 {
		return nil
	}
	return payload
}

// toMinorAmount converts a decimal dollar amount to cents.
func toMinorAmount(amount string) (int64, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w: amount is invalid", ErrConfigInvalid)
	}
	if parsed.IsNegative() {
		return 0, fmt.Errorf("%w: amount must not be negative", ErrConfigInvalid)
	}
	minor := parsed.Shift(2).Round(0)
	return minor.IntPart(), nil
}

func doJSONRequest(ctx context.Context, cfg *Config, method, path string, payload interface{}) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: marshal payload failed", ErrRequestFailed)
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", apiVersion)

	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	return respBody, resp.StatusCode, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}
