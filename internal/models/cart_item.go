package models

import "time"

// CartItem is one cart line. Line identity is the triple
// (SessionID+ProductID, Variant, IsSubscription); adding a product that
// matches an existing line's identity bumps that line's quantity instead
// of creating a second row. Rows are hard-deleted so the identity unique
// index stays meaningful across remove/re-add cycles.
type CartItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	SessionID      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_line_identity" json:"-"`
	ProductID      uint      `gorm:"not null;uniqueIndex:idx_cart_line_identity" json:"product_id"`
	Variant        string    `gorm:"type:varchar(100);not null;default:'';uniqueIndex:idx_cart_line_identity" json:"variant"`
	IsSubscription bool      `gorm:"not null;default:false;uniqueIndex:idx_cart_line_identity" json:"is_subscription"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"index" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
