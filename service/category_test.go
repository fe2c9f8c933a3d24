package service

import (
	"testing"

	"github.com/uplink-social/uplink/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv(t)
	categories := env.category()

	created, err := categories.CreateCategory("Tech News")
	require.NoError(t, err)
	assert.Equal(t, "Tech News", created.Title)
	assert.Equal(t, "tech-news", created.Slug)

	fetched, err := categories.GetCategoryBySlug("tech-news")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	renamed, err := categories.UpdateCategory("tech-news", "Science News")
	require.NoError(t, err)
	assert.Equal(t, "science-news", renamed.Slug)

	// The old slug no longer resolves.
	_, err = categories.GetCategoryBySlug("tech-news")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyCategoryNotFound))

	require.NoError(t, categories.DeleteCategory("science-news"))

	list, err := categories.GetCategories()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	env := newTestEnv(t)
	categories := env.category()

	_, err := categories.CreateCategory("Tech")
	require.NoError(t, err)

	_, err = categories.CreateCategory("Tech")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyDuplicateCategory))
}

func TestCreateCategoryEmptyTitle(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.category().CreateCategory("")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyValidationFailed))
}

func TestDeleteCategoryCascadesPosts(t *testing.T) {
	env := newTestEnv(t)
	categories := env.category()
	posts := env.post()

	userID := registerTestUser(t, env, "Jane Roe")

	category, err := categories.CreateCategory("Tech")
	require.NoError(t, err)

	post, err := posts.CreatePost(userID, core.PostParams{
		Title:      "First post",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, categories.DeleteCategory(category.Slug))

	_, err = posts.GetPost(post.ID)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyPostNotFound))
}
