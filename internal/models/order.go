package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is one checkout attempt handed off to the payment provider.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`
	SessionID      string         `gorm:"type:varchar(64);index;not null" json:"-"`
	Status         string         `gorm:"index;not null" json:"status"`
	Currency       string         `gorm:"not null" json:"currency"`
	Email          string         `gorm:"type:varchar(254);index" json:"email"`
	FirstName      string         `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string         `gorm:"type:varchar(100)" json:"last_name"`
	Address        string         `gorm:"type:varchar(300)" json:"address"`
	City           string         `gorm:"type:varchar(100)" json:"city"`
	State          string         `gorm:"type:varchar(50)" json:"state"`
	ZipCode        string         `gorm:"type:varchar(20)" json:"zip_code"`
	DeliveryMethod string         `gorm:"type:varchar(30);not null" json:"delivery_method"`
	ShippingLabel  string         `gorm:"type:varchar(50);not null" json:"shipping_label"`
	SubtotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"`
	ShippingAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	IdempotencyKey string         `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	PaymentLinkID  string         `gorm:"type:varchar(100)" json:"payment_link_id,omitempty"`
	PaymentLinkURL string         `gorm:"type:varchar(500)" json:"payment_link_url,omitempty"`
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`
	PaidAt         *time.Time     `gorm:"index" json:"paid_at"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
