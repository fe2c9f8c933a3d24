package models

import "gorm.io/gorm"

func init() {
	registerModel(&PostImage{})
}

type PostImage struct {
	gorm.Model
	PostID uint `gorm:"index;not null"`
	Image  string
}
