package models

import "gorm.io/gorm"

func init() {
	registerModel(&Follow{})
}

// Follow is a directed edge: Follower follows Following.
type Follow struct {
	gorm.Model
	FollowerID  uint `gorm:"uniqueIndex:idx_follow;not null"`
	Follower    User
	FollowingID uint `gorm:"uniqueIndex:idx_follow;not null"`
	Following   User
}
