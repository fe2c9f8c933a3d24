package models

import "gorm.io/gorm"

func init() {
	registerModel(&PostLike{})
}

// PostLike records one user liking one post. The composite unique index
// keeps a like idempotent per user and post.
type PostLike struct {
	gorm.Model
	PostID uint `gorm:"uniqueIndex:idx_post_like;not null"`
	Post   Post
	UserID uint `gorm:"uniqueIndex:idx_post_like;not null"`
	User   User
}
