package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/concho-nutrition/storefront/internal/models"
	"github.com/concho-nutrition/storefront/internal/provider"
	"github.com/concho-nutrition/storefront/internal/repository"
	"github.com/concho-nutrition/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart tables failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
		t.Fatalf("reset cart table failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("reset product table failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	pricing := service.NewPricing(nil)

	container := &provider.Container{
		CartService: service.NewCartService(cartRepo, productRepo, pricing),
	}
	return New(container), db
}

func createHandlerTestProduct(t *testing.T, db *gorm.DB, slug string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:        slug,
		Title:       "Test Supplement",
		PriceAmount: models.NewMoneyFromFloat(price),
		Currency:    "USD",
		Flavors:     models.StringArray{"Chocolate"},
		Stock:       50,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func cartTestContext(t *testing.T, method, path, body, sessionID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if sessionID != "" {
		c.Set("session_id", sessionID)
	}
	return c, w
}

type cartEnvelope struct {
	StatusCode int    `json:"status_code"`
	Msg        string `json:"msg"`
	Data       struct {
		Lines  []json.RawMessage `json:"lines"`
		Totals struct {
			ItemCount int          `json:"item_count"`
			Subtotal  models.Money `json:"subtotal"`
		} `json:"totals"`
	} `json:"data"`
}

func decodeCartEnvelope(t *testing.T, body []byte) cartEnvelope {
	t.Helper()
	var resp cartEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal cart envelope failed: %v", err)
	}
	return resp
}

func TestGetCartWithoutSessionUnauthorized(t *testing.T) {
	h, _ := setupCartHandlerTest(t)

	c, w := cartTestContext(t, http.MethodGet, "/api/v1/cart", "", "")
	h.GetCart(c)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestGetCartEmpty(t *testing.T) {
	h, _ := setupCartHandlerTest(t)

	c, w := cartTestContext(t, http.MethodGet, "/api/v1/cart", "", "sess-h1")
	h.GetCart(c)

	resp := decodeCartEnvelope(t, w.Body.Bytes())
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if len(resp.Data.Lines) != 0 {
		t.Fatalf("empty cart want 0 lines got %d", len(resp.Data.Lines))
	}
	if resp.Data.Totals.ItemCount != 0 {
		t.Fatalf("empty cart item count want 0 got %d", resp.Data.Totals.ItemCount)
	}
}

func TestAddCartItemSuccess(t *testing.T) {
	h, db := setupCartHandlerTest(t)
	product := createHandlerTestProduct(t, db, "handler-add", 19.99)

	body := `{"product_id":` + jsonUint(product.ID) + `,"quantity":2,"variant":"Chocolate"}`
	c, w := cartTestContext(t, http.MethodPost, "/api/v1/cart/items", body, "sess-h2")
	h.AddCartItem(c)

	resp := decodeCartEnvelope(t, w.Body.Bytes())
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (msg %s)", resp.StatusCode, resp.Msg)
	}
	if len(resp.Data.Lines) != 1 {
		t.Fatalf("cart want 1 line got %d", len(resp.Data.Lines))
	}
	if resp.Data.Totals.ItemCount != 2 {
		t.Fatalf("item count want 2 got %d", resp.Data.Totals.ItemCount)
	}
}

func TestAddCartItemUnknownFlavorRejected(t *testing.T) {
	h, db := setupCartHandlerTest(t)
	product := createHandlerTestProduct(t, db, "handler-flavor", 19.99)

	body := `{"product_id":` + jsonUint(product.ID) + `,"quantity":1,"variant":"Mango"}`
	c, w := cartTestContext(t, http.MethodPost, "/api/v1/cart/items", body, "sess-h3")
	h.AddCartItem(c)

	resp := decodeCartEnvelope(t, w.Body.Bytes())
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func jsonUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
