package repository

import (
	"testing"

	"github.com/concho-nutrition/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
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
	return NewCartRepository(db), db
}

func createCartProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:        slug,
		Title:       "Whey Protein",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(40)),
		Currency:    "USD",
		Flavors:     models.StringArray{"Chocolate", "Vanilla"},
		Stock:       100,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func addCartLine(t *testing.T, repo *GormCartRepository, sessionID string, productID uint, variant string, subscription bool, quantity int) *models.CartItem {
	t.Helper()
	item := &models.CartItem{
		SessionID:      sessionID,
		ProductID:      productID,
		Variant:        variant,
		IsSubscription: subscription,
		Quantity:       quantity,
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("create cart line failed: %v", err)
	}
	return item
}

func TestCartLineIdentityLookup(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createCartProduct(t, db, "identity-lookup")

	addCartLine(t, repo, "sess-1", product.ID, "Chocolate", false, 2)
	addCartLine(t, repo, "sess-1", product.ID, "Chocolate", true, 1)

	found, err := repo.FindByIdentity("sess-1", product.ID, "Chocolate", false)
	if err != nil {
		t.Fatalf("find by identity failed: %v", err)
	}
	if found == nil || found.Quantity != 2 {
		t.Fatalf("one-time line want quantity 2 got %+v", found)
	}

	found, err = repo.FindByIdentity("sess-1", product.ID, "Chocolate", true)
	if err != nil {
		t.Fatalf("find subscription line failed: %v", err)
	}
	if found == nil || found.Quantity != 1 {
		t.Fatalf("subscription line want quantity 1 got %+v", found)
	}

	found, err = repo.FindByIdentity("sess-1", product.ID, "Vanilla", false)
	if err != nil {
		t.Fatalf("find missing variant failed: %v", err)
	}
	if found != nil {
		t.Fatalf("missing variant should return nil got %+v", found)
	}
}

func TestCartDeleteByProductSpansVariants(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createCartProduct(t, db, "delete-scope")
	other := createCartProduct(t, db, "delete-scope-other")

	addCartLine(t, repo, "sess-1", product.ID, "Chocolate", false, 1)
	addCartLine(t, repo, "sess-1", product.ID, "Vanilla", false, 1)
	addCartLine(t, repo, "sess-1", product.ID, "Vanilla", true, 1)
	addCartLine(t, repo, "sess-1", other.ID, "", false, 1)
	addCartLine(t, repo, "sess-2", product.ID, "Chocolate", false, 1)

	if err := repo.DeleteByProduct("sess-1", product.ID); err != nil {
		t.Fatalf("delete by product failed: %v", err)
	}

	items, err := repo.ListBySession("sess-1")
	if err != nil {
		t.Fatalf("list session failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != other.ID {
		t.Fatalf("only the other product should remain got %+v", items)
	}

	items, err = repo.ListBySession("sess-2")
	if err != nil {
		t.Fatalf("list other session failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("other session cart must be untouched got %d lines", len(items))
	}
}

func TestCartUpdateQuantityByProductSpansVariants(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createCartProduct(t, db, "update-scope")

	addCartLine(t, repo, "sess-1", product.ID, "Chocolate", false, 1)
	addCartLine(t, repo, "sess-1", product.ID, "Vanilla", true, 3)

	affected, err := repo.UpdateQuantityByProduct("sess-1", product.ID, 5)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("both lines should update, affected want 2 got %d", affected)
	}

	items, err := repo.ListBySession("sess-1")
	if err != nil {
		t.Fatalf("list session failed: %v", err)
	}
	for _, item := range items {
		if item.Quantity != 5 {
			t.Fatalf("line %d want quantity 5 got %d", item.ID, item.Quantity)
		}
	}
}

func TestCartClearBySession(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createCartProduct(t, db, "clear-session")

	addCartLine(t, repo, "sess-1", product.ID, "Chocolate", false, 1)
	addCartLine(t, repo, "sess-2", product.ID, "Chocolate", false, 1)

	if err := repo.ClearBySession("sess-1"); err != nil {
		t.Fatalf("clear session failed: %v", err)
	}

	items, err := repo.ListBySession("sess-1")
	if err != nil {
		t.Fatalf("list cleared session failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cleared cart should be empty got %d lines", len(items))
	}

	items, err = repo.ListBySession("sess-2")
	if err != nil {
		t.Fatalf("list other session failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("other session cart must survive got %d lines", len(items))
	}
}
