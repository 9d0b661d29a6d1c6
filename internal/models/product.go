package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is one catalog item as synced from the vendor catalog.
type Product struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	Slug              string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title             string         `gorm:"type:varchar(300);not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	PriceAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`
	SalePriceAmount   *Money         `gorm:"type:decimal(20,2)" json:"sale_price_amount,omitempty"`
	SubscriptionPrice *Money         `gorm:"type:decimal(20,2)" json:"subscription_price_amount,omitempty"`
	Currency          string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`
	Flavors           StringArray    `gorm:"type:json" json:"flavors"`
	Images            StringArray    `gorm:"type:json" json:"images"`
	VendorCategory    string         `gorm:"type:varchar(200)" json:"vendor_category"`
	Category          string         `gorm:"type:varchar(50);index" json:"category"`
	Stock             int            `gorm:"not null;default:0" json:"stock"`
	IsActive          bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder         int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// OneTimePrice returns the effective non-subscription unit price:
// the sale price when present, else the list price.
func (p *Product) OneTimePrice() Money {
	if p.SalePriceAmount != nil {
		return *p.SalePriceAmount
	}
	return p.PriceAmount
}

// UnitPrice returns the unit price for the given purchase mode. A
// subscription line falls back to the one-time price when the product
// carries no subscription discount.
func (p *Product) UnitPrice(isSubscription bool) Money {
	if isSubscription && p.SubscriptionPrice != nil {
		return *p.SubscriptionPrice
	}
	return p.OneTimePrice()
}

// HasFlavor reports whether the variant is one of the product's flavors.
// An empty variant is always valid (flavorless products).
func (p *Product) HasFlavor(variant string) bool {
	if variant == "" {
		return true
	}
	for _, flavor := range p.Flavors {
		if flavor == variant {
			return true
		}
	}
	return false
}
