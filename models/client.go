package models

import "time"

type Client struct {
	ClientID  int        `gorm:"primaryKey;column:client_id" json:"client_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Email     string     `gorm:"column:email;size:255" json:"email"`
	Phone     string     `gorm:"column:phone" json:"phone"`
	GSTNumber string     `gorm:"column:gst_number" json:"gst_number"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}
