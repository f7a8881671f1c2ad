package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LicensePurchase represents one purchased (or sold) license lot.
type LicensePurchase struct {
	LicenseID      string     `gorm:"primaryKey;column:license_id;size:36" json:"license_id"`
	ToolName       string     `gorm:"column:tool_name" json:"tool_name"`
	VendorID       *int       `gorm:"column:vendor_id" json:"vendor_id,omitempty"`
	ClientID       int        `gorm:"column:client_id" json:"client_id"`
	PurchaseType   string     `gorm:"column:purchase_type" json:"purchase_type"` // purchase|sale
	PurchaseDate   *time.Time `gorm:"column:purchase_date" json:"purchase_date,omitempty"`
	ExpirationDate *time.Time `gorm:"column:expiration_date;index" json:"expiration_date,omitempty"`
	Seats          int        `gorm:"column:seats" json:"seats"`
	Price          float64    `gorm:"column:price" json:"price"`
	CurrencyCode   string     `gorm:"column:currency_code;size:3" json:"currency_code"`
	CreateAt       time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Client Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

func (LicensePurchase) TableName() string {
	return "license_purchases"
}

// BeforeCreate assigns a UUID primary key when none was supplied.
func (l *LicensePurchase) BeforeCreate(tx *gorm.DB) error {
	if l.LicenseID == "" {
		l.LicenseID = uuid.NewString()
	}
	if l.CreateAt.IsZero() {
		l.CreateAt = time.Now()
	}
	return nil
}
