package models

import (
	"time"

	"gorm.io/gorm"
)

func init() {
	registerModel(&Message{})
}

type Message struct {
	gorm.Model
	SenderID   uint `gorm:"index;not null"`
	Sender     User
	ReceiverID uint `gorm:"index;not null"`
	Receiver   User
	Body       string `gorm:"not null"`
	IsRead     bool   `gorm:"default:false;"`
	ReadAt     *time.Time
}
