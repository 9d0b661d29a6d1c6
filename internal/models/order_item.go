package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a priced snapshot of one cart line at checkout time.
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderID        uint           `gorm:"index;not null" json:"order_id"`
	ProductID      uint           `gorm:"index;not null" json:"product_id"`
	Title          string         `gorm:"type:varchar(300);not null" json:"title"`
	Variant        string         `gorm:"type:varchar(100);not null;default:''" json:"variant"`
	UnitPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	TotalPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	IsSubscription bool           `gorm:"not null;default:false" json:"is_subscription"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
