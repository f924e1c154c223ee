package models

import "time"

type Song struct {
	ID               string    `gorm:"primaryKey;size:64" json:"id"`
	WorkID           string    `gorm:"size:64;not null;index" json:"work_id"`
	Title            string    `gorm:"size:200;not null" json:"title"`
	Artist           string    `gorm:"size:200" json:"artist"`
	YoutubeID        string    `gorm:"size:32" json:"youtube_id"`
	AudioURL         string    `gorm:"size:500" json:"audio_url"`
	AudioURLReversed string    `gorm:"size:500" json:"audio_url_reversed"`
	DurationSec      float64   `gorm:"not null;default:0" json:"duration"`
	CreatedAt        time.Time `json:"created_at"`
}
