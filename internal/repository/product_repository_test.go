package repository

import (
	"errors"
	"testing"

	"github.com/concho-nutrition/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) *GormProductRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product table failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("reset product table failed: %v", err)
	}
	return NewProductRepository(db)
}

func seedProduct(slug string) *models.Product {
	return &models.Product{
		Slug:        slug,
		Title:       "Whey Protein",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(40)),
		Currency:    "USD",
		Stock:       100,
		IsActive:    true,
	}
}

func TestProductCreateAndCountBySlug(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	count, err := repo.CountBySlug("whey-isolate-2lb", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty table want count 0 got %d", count)
	}

	if err := repo.Create(seedProduct("whey-isolate-2lb")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	count, err = repo.CountBySlug("whey-isolate-2lb", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("want count 1 got %d", count)
	}
}

func TestProductTransactionRollsBack(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	boom := errors.New("boom")

	err := repo.Transaction(func(tx *gorm.DB) error {
		inner := repo.WithTx(tx)
		if err := inner.Create(seedProduct("rolled-back")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("transaction must surface the inner error, got %v", err)
	}

	count, err := repo.CountBySlug("rolled-back", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed transaction must not persist rows, got %d", count)
	}
}
