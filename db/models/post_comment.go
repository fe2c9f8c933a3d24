package models

import "gorm.io/gorm"

func init() {
	registerModel(&PostComment{})
}

type PostComment struct {
	gorm.Model
	PostID  uint `gorm:"index;not null"`
	Post    Post
	UserID  uint `gorm:"index;not null"`
	User    User
	Comment string `gorm:"not null"`
}
