package models

import "time"

type Vendor struct {
	VendorID     int        `gorm:"primaryKey;column:vendor_id" json:"vendor_id"`
	Name         string     `gorm:"column:name" json:"name"`
	ContactEmail string     `gorm:"column:contact_email;size:255" json:"contact_email"`
	Website      string     `gorm:"column:website" json:"website"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Vendor) TableName() string {
	return "vendors"
}
