package models

import "gorm.io/gorm"

func init() {
	registerModel(&Category{})
}

type Category struct {
	gorm.Model
	Title string `gorm:"unique;not null"`
	Slug  string `gorm:"uniqueIndex"`
	Image string
	Posts []Post
}
