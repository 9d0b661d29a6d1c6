package repository

import (
	"errors"

	"github.com/concho-nutrition/storefront/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart line data access interface.
type CartRepository interface {
	ListBySession(sessionID string) ([]models.CartItem, error)
	FindByIdentity(sessionID string, productID uint, variant string, isSubscription bool) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Save(item *models.CartItem) error
	Delete(id uint) error
	DeleteByProduct(sessionID string, productID uint) error
	UpdateQuantityByProduct(sessionID string, productID uint, quantity int) (int64, error)
	ClearBySession(sessionID string) error
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ListBySession returns the cart lines for a session in insertion order.
func (r *GormCartRepository) ListBySession(sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("session_id = ?", sessionID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByIdentity looks up a line by its full identity. Variant and
// subscription flag both participate so the same product can appear as
// several distinct lines.
func (r *GormCartRepository) FindByIdentity(sessionID string, productID uint, variant string, isSubscription bool) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("session_id = ? AND product_id = ? AND variant = ? AND is_subscription = ?",
		sessionID, productID, variant, isSubscription).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new cart line.
func (r *GormCartRepository) Create(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Create(item).Error
}

// Save persists changes to an existing cart line.
func (r *GormCartRepository) Save(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Save(item).Error
}

// Delete removes a single cart line.
func (r *GormCartRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.CartItem{}, id).Error
}

// DeleteByProduct removes every line for a product regardless of variant
// or subscription flag.
func (r *GormCartRepository) DeleteByProduct(sessionID string, productID uint) error {
	return r.db.Where("session_id = ? AND product_id = ?", sessionID, productID).Delete(&models.CartItem{}).Error
}

// UpdateQuantityByProduct sets the quantity on every line for a product.
// Returns the number of affected rows.
func (r *GormCartRepository) UpdateQuantityByProduct(sessionID string, productID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ClearBySession empties a session's cart.
func (r *GormCartRepository) ClearBySession(sessionID string) error {
	return r.db.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error
}
