package models

import "time"

type Universe struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	OrderNum  int       `gorm:"not null;default:0" json:"order_num"`
	Works     []Work    `gorm:"foreignKey:UniverseID" json:"works,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
