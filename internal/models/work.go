package models

import "time"

type Work struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	UniverseID string    `gorm:"size:64;not null;index" json:"universe_id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	OrderNum   int       `gorm:"not null;default:0" json:"order_num"`
	Songs      []Song    `gorm:"foreignKey:WorkID" json:"songs,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
