package service

import (
	"testing"

	"github.com/uplink-social/uplink/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	posts := env.post()

	userID := registerTestUser(t, env, "Jane Roe")

	category, err := env.category().CreateCategory("Tech")
	require.NoError(t, err)

	post, err := posts.CreatePost(userID, core.PostParams{
		Title:       "Hello",
		CategoryID:  category.ID,
		Description: "First post",
		ImageRefs:   []string{"img-1", "img-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, userID, post.UserID)
	require.NotNil(t, post.Category)
	assert.Equal(t, category.ID, post.Category.ID)
	assert.Len(t, post.Images, 2)
	assert.Equal(t, "Jane Roe", post.User.Name)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	userID := registerTestUser(t, env, "Jane Roe")

	_, err := env.post().CreatePost(userID, core.PostParams{
		Title:      "Hello",
		CategoryID: 999,
	})
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyCategoryNotFound))
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	posts := env.post()

	ownerID := registerTestUser(t, env, "Jane Roe")
	strangerID := registerTestUser(t, env, "John Doe")

	post, err := posts.CreatePost(ownerID, core.PostParams{Title: "Hello"})
	require.NoError(t, err)

	_, err = posts.UpdatePost(strangerID, post.ID, core.PostParams{Title: "Hijacked"})
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyForbidden))

	updated, err := posts.UpdatePost(ownerID, post.ID, core.PostParams{Title: "Hello again"})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
}

func TestUpdatePostReplacesImages(t *testing.T) {
	env := newTestEnv(t)
	posts := env.post()

	userID := registerTestUser(t, env, "Jane Roe")

	post, err := posts.CreatePost(userID, core.PostParams{
		Title:     "Hello",
		ImageRefs: []string{"img-1", "img-2"},
	})
	require.NoError(t, err)

	updated, err := posts.UpdatePost(userID, post.ID, core.PostParams{ImageRefs: []string{"img-3"}})
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, "img-3", updated.Images[0].Image)
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	posts := env.post()

	ownerID := registerTestUser(t, env, "Jane Roe")
	strangerID := registerTestUser(t, env, "John Doe")

	post, err := posts.CreatePost(ownerID, core.PostParams{Title: "Hello"})
	require.NoError(t, err)

	err = posts.DeletePost(strangerID, post.ID)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyForbidden))

	require.NoError(t, posts.DeletePost(ownerID, post.ID))

	_, err = posts.GetPost(post.ID)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyPostNotFound))
}

func TestToggleLike(t *testing.T) {
	env := newTestEnv(t)
	posts := env.post()

	ownerID := registerTestUser(t, env, "Jane Roe")
	likerID := registerTestUser(t, env, "John Doe")

	post, err := posts.CreatePost(ownerID, core.PostParams{Title: "Hello"})
	require.NoError(t, err)

	liked, err := posts.ToggleLike(likerID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	fetched, err := posts.GetPost(post.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Likes, 1)

	liked, err = posts.ToggleLike(likerID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	fetched, err = posts.GetPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Likes)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	posts := env.post()

	ownerID := registerTestUser(t, env, "Jane Roe")
	commenterID := registerTestUser(t, env, "John Doe")

	post, err := posts.CreatePost(ownerID, core.PostParams{Title: "Hello"})
	require.NoError(t, err)

	comment, err := posts.AddComment(commenterID, post.ID, "Nice post")
	require.NoError(t, err)
	assert.Equal(t, commenterID, comment.UserID)

	// Only the author may edit or delete.
	_, err = posts.UpdateComment(ownerID, comment.ID, "Edited")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyForbidden))

	updated, err := posts.UpdateComment(commenterID, comment.ID, "Edited")
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Comment)

	err = posts.DeleteComment(ownerID, comment.ID)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyForbidden))

	require.NoError(t, posts.DeleteComment(commenterID, comment.ID))

	fetched, err := posts.GetPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Comments)
}
