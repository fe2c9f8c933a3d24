package models

import "gorm.io/gorm"

func init() {
	registerModel(&Post{})
}

type Post struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	UserID      uint `gorm:"index;not null"`
	User        User
	CategoryID  *uint `gorm:"index"`
	Category    *Category
	Images      []PostImage
	Likes       []PostLike
	Comments    []PostComment
}
