package service

import (
	"errors"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"
	"github.com/uplink-social/uplink/db/models"

	"gorm.io/gorm"
)

var _ core.PostService = (*PostServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.POST_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewPostService()
		},
		Depends: []string{core.USER_SERVICE, core.CATEGORY_SERVICE},
	})
}

type PostServiceDefault struct {
	ctx  core.Context
	db   *gorm.DB
	user core.UserService
}

func NewPostService() (*PostServiceDefault, []core.ContextBuilderOption, error) {
	post := &PostServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			post.ctx = ctx
			post.db = ctx.DB()
			post.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			return nil
		}),
	)

	return post, opts, nil
}

func (p PostServiceDefault) ID() string {
	return core.POST_SERVICE
}

func (p PostServiceDefault) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Category").Preload("Images").
		Preload("Likes").Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("post_comments.created_at asc").Preload("User")
	})
}

func (p PostServiceDefault) GetPosts() ([]models.Post, error) {
	var posts []models.Post

	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return p.preload(db).Order("created_at desc").Find(&posts)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return posts, nil
}

func (p PostServiceDefault) GetUserPosts(userID uint) ([]models.Post, error) {
	var posts []models.Post

	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return p.preload(db).Where(&models.Post{UserID: userID}).Order("created_at desc").Find(&posts)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return posts, nil
}

func (p PostServiceDefault) GetPost(id uint) (*models.Post, error) {
	var post models.Post

	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return p.preload(db).First(&post, id)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewDomainError(core.ErrKeyPostNotFound, nil)
		}

		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &post, nil
}

func (p PostServiceDefault) CreatePost(userID uint, params core.PostParams) (*models.Post, error) {
	if params.Title == "" {
		return nil, core.NewDomainError(core.ErrKeyValidationFailed, nil, "Post title is required.")
	}

	post := models.Post{
		Title:       params.Title,
		Description: params.Description,
		UserID:      userID,
	}

	if params.CategoryID != 0 {
		var category models.Category
		if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
			return db.First(&category, params.CategoryID)
		}); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, core.NewDomainError(core.ErrKeyCategoryNotFound, nil)
			}

			return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
		}

		post.CategoryID = &category.ID
	}

	for _, ref := range params.ImageRefs {
		post.Images = append(post.Images, models.PostImage{Image: ref})
	}

	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&post)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return p.GetPost(post.ID)
}

func (p PostServiceDefault) UpdatePost(userID uint, postID uint, params core.PostParams) (*models.Post, error) {
	post, err := p.GetPost(postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, core.NewDomainError(core.ErrKeyForbidden, nil)
	}

	updates := map[string]any{}

	if params.Title != "" {
		updates["title"] = params.Title
	}

	if params.Description != "" {
		updates["description"] = params.Description
	}

	if params.CategoryID != 0 {
		var category models.Category
		if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
			return db.First(&category, params.CategoryID)
		}); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, core.NewDomainError(core.ErrKeyCategoryNotFound, nil)
			}

			return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
		}

		updates["category_id"] = category.ID
	}

	if err = db.RetryableTransaction(p.ctx, p.db, func(tx *gorm.DB) *gorm.DB {
		if len(updates) > 0 {
			if err := tx.Model(post).Updates(updates).Error; err != nil {
				return &gorm.DB{Error: err}
			}
		}

		// A non-nil image set replaces the existing one wholesale.
		if params.ImageRefs != nil {
			if err := tx.Where(&models.PostImage{PostID: post.ID}).Delete(&models.PostImage{}).Error; err != nil {
				return &gorm.DB{Error: err}
			}

			for _, ref := range params.ImageRefs {
				if err := tx.Create(&models.PostImage{PostID: post.ID, Image: ref}).Error; err != nil {
					return &gorm.DB{Error: err}
				}
			}
		}

		return tx
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return p.GetPost(post.ID)
}

func (p PostServiceDefault) DeletePost(userID uint, postID uint) error {
	post, err := p.GetPost(postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return core.NewDomainError(core.ErrKeyForbidden, nil)
	}

	if err = db.RetryableTransaction(p.ctx, p.db, func(tx *gorm.DB) *gorm.DB {
		for _, assoc := range []any{&models.PostImage{}, &models.PostLike{}, &models.PostComment{}} {
			if err := tx.Where("post_id = ?", post.ID).Delete(assoc).Error; err != nil {
				return &gorm.DB{Error: err}
			}
		}

		return tx.Delete(post)
	}); err != nil {
		return core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}

func (p PostServiceDefault) ToggleLike(userID uint, postID uint) (bool, error) {
	if _, err := p.GetPost(postID); err != nil {
		return false, err
	}

	var like models.PostLike

	err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Where(&models.PostLike{PostID: postID, UserID: userID}).First(&like)
	})

	if err == nil {
		if err = db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Delete(&like)
		}); err != nil {
			return false, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
		}

		return false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	like = models.PostLike{PostID: postID, UserID: userID}

	if err = db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&like)
	}); err != nil {
		// A concurrent like beat us to the unique index; the post ends up
		// liked either way.
		if db.IsDuplicateKeyError(err) {
			return true, nil
		}

		return false, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return true, nil
}

func (p PostServiceDefault) AddComment(userID uint, postID uint, comment string) (*models.PostComment, error) {
	if comment == "" {
		return nil, core.NewDomainError(core.ErrKeyValidationFailed, nil, "Comment text is required.")
	}

	if _, err := p.GetPost(postID); err != nil {
		return nil, err
	}

	record := models.PostComment{
		PostID:  postID,
		UserID:  userID,
		Comment: comment,
	}

	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&record)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &record, nil
}

func (p PostServiceDefault) getComment(commentID uint) (*models.PostComment, error) {
	var record models.PostComment

	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.First(&record, commentID)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewDomainError(core.ErrKeyCommentNotFound, nil)
		}

		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &record, nil
}

func (p PostServiceDefault) UpdateComment(userID uint, commentID uint, comment string) (*models.PostComment, error) {
	if comment == "" {
		return nil, core.NewDomainError(core.ErrKeyValidationFailed, nil, "Comment text is required.")
	}

	record, err := p.getComment(commentID)
	if err != nil {
		return nil, err
	}

	if record.UserID != userID {
		return nil, core.NewDomainError(core.ErrKeyForbidden, nil)
	}

	record.Comment = comment

	if err = db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Save(record)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return record, nil
}

func (p PostServiceDefault) DeleteComment(userID uint, commentID uint) error {
	record, err := p.getComment(commentID)
	if err != nil {
		return err
	}

	if record.UserID != userID {
		return core.NewDomainError(core.ErrKeyForbidden, nil)
	}

	if err = db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Delete(record)
	}); err != nil {
		return core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}
