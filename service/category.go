package service

import (
	"errors"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"
	"github.com/uplink-social/uplink/db/models"

	"gorm.io/gorm"
)

var _ core.CategoryService = (*CategoryServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.CATEGORY_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewCategoryService()
		},
	})
}

type CategoryServiceDefault struct {
	ctx core.Context
	db  *gorm.DB
}

func NewCategoryService() (*CategoryServiceDefault, []core.ContextBuilderOption, error) {
	category := &CategoryServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			category.ctx = ctx
			category.db = ctx.DB()
			return nil
		}),
	)

	return category, opts, nil
}

func (c CategoryServiceDefault) ID() string {
	return core.CATEGORY_SERVICE
}

func (c CategoryServiceDefault) GetCategories() ([]models.Category, error) {
	var categories []models.Category

	if err := db.RetryOnLock(c.db, func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at desc").Find(&categories)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return categories, nil
}

func (c CategoryServiceDefault) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category

	if err := db.RetryOnLock(c.db, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("posts.created_at desc")
		}).Where(&models.Category{Slug: slug}).First(&category)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewDomainError(core.ErrKeyCategoryNotFound, nil)
		}

		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &category, nil
}

func (c CategoryServiceDefault) CreateCategory(name string) (*models.Category, error) {
	if name == "" {
		return nil, core.NewDomainError(core.ErrKeyValidationFailed, nil, "Category title is required.")
	}

	category := models.Category{
		Title: name,
		Slug:  core.Slugify(name),
	}

	if err := db.RetryOnLock(c.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&category)
	}); err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, core.NewDomainError(core.ErrKeyDuplicateCategory, nil)
		}

		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &category, nil
}

func (c CategoryServiceDefault) UpdateCategory(slug string, name string) (*models.Category, error) {
	if name == "" {
		return nil, core.NewDomainError(core.ErrKeyValidationFailed, nil, "Category title is required.")
	}

	category, err := c.GetCategoryBySlug(slug)
	if err != nil {
		return nil, err
	}

	category.Title = name
	category.Slug = core.Slugify(name)

	if err = db.RetryOnLock(c.db, func(db *gorm.DB) *gorm.DB {
		return db.Save(category)
	}); err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, core.NewDomainError(core.ErrKeyDuplicateCategory, nil)
		}

		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return category, nil
}

func (c CategoryServiceDefault) DeleteCategory(slug string) error {
	category, err := c.GetCategoryBySlug(slug)
	if err != nil {
		return err
	}

	if err = db.RetryableTransaction(c.ctx, c.db, func(tx *gorm.DB) *gorm.DB {
		if err := tx.Where(&models.Post{CategoryID: &category.ID}).Delete(&models.Post{}).Error; err != nil {
			return &gorm.DB{Error: err}
		}

		return tx.Delete(category)
	}); err != nil {
		return core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}
