package service

import (
	"errors"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"
	"github.com/uplink-social/uplink/db/models"

	"gorm.io/gorm"
)

var _ core.SocialService = (*SocialServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.SOCIAL_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewSocialService()
		},
		Depends: []string{core.USER_SERVICE},
	})
}

type SocialServiceDefault struct {
	ctx  core.Context
	db   *gorm.DB
	user core.UserService
}

func NewSocialService() (*SocialServiceDefault, []core.ContextBuilderOption, error) {
	social := &SocialServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			social.ctx = ctx
			social.db = ctx.DB()
			social.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			return nil
		}),
	)

	return social, opts, nil
}

func (s SocialServiceDefault) ID() string {
	return core.SOCIAL_SERVICE
}

func (s SocialServiceDefault) ToggleFollow(followerID uint, followingID uint) (bool, error) {
	if followerID == followingID {
		return false, core.NewDomainError(core.ErrKeySelfFollow, nil)
	}

	if exists, _, err := s.user.AccountExists(followingID); err != nil {
		return false, err
	} else if !exists {
		return false, core.NewDomainError(core.ErrKeyUserNotFound, nil)
	}

	var follow models.Follow

	err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Where(&models.Follow{FollowerID: followerID, FollowingID: followingID}).First(&follow)
	})

	if err == nil {
		if err = db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Delete(&follow)
		}); err != nil {
			return false, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
		}

		return false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	follow = models.Follow{FollowerID: followerID, FollowingID: followingID}

	if err = db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&follow)
	}); err != nil {
		if db.IsDuplicateKeyError(err) {
			return true, nil
		}

		return false, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return true, nil
}

func (s SocialServiceDefault) Followers(userID uint) ([]models.Follow, error) {
	var follows []models.Follow

	if err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Follower").Where(&models.Follow{FollowingID: userID}).Find(&follows)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return follows, nil
}

func (s SocialServiceDefault) Following(userID uint) ([]models.Follow, error) {
	var follows []models.Follow

	if err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Following").Where(&models.Follow{FollowerID: userID}).Find(&follows)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return follows, nil
}
