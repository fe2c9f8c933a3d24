package core

import "github.com/uplink-social/uplink/db/models"

const CATEGORY_SERVICE = "category"
const POST_SERVICE = "post"

type CategoryService interface {
	// GetCategories returns all categories, newest first.
	GetCategories() ([]models.Category, error)

	// GetCategoryBySlug returns one category with its posts preloaded.
	GetCategoryBySlug(slug string) (*models.Category, error)

	// CreateCategory creates a category; the slug is generated from the
	// name. Duplicate names conflict.
	CreateCategory(name string) (*models.Category, error)

	// UpdateCategory renames a category; the slug is regenerated.
	UpdateCategory(slug string, name string) (*models.Category, error)

	// DeleteCategory removes a category and cascades to its posts.
	DeleteCategory(slug string) error

	Service
}

// PostParams carries the inputs for creating or updating a post. ImageRefs
// are opaque references; the storage pipeline is out of scope.
type PostParams struct {
	Title       string
	CategoryID  uint
	Description string
	ImageRefs   []string
}

type PostService interface {
	// GetPosts returns all posts, newest first, with associations preloaded.
	GetPosts() ([]models.Post, error)

	// GetUserPosts returns the posts of one user, newest first.
	GetUserPosts(userID uint) ([]models.Post, error)

	// GetPost returns one post with associations preloaded.
	GetPost(id uint) (*models.Post, error)

	// CreatePost creates a post owned by userID.
	CreatePost(userID uint, params PostParams) (*models.Post, error)

	// UpdatePost updates a post; only the owner may update. A non-nil
	// ImageRefs replaces the existing image set.
	UpdatePost(userID uint, postID uint, params PostParams) (*models.Post, error)

	// DeletePost removes a post; only the owner may delete.
	DeletePost(userID uint, postID uint) error

	// ToggleLike likes the post if the user has not liked it yet and
	// removes the like otherwise. It reports whether the post is liked
	// after the call.
	ToggleLike(userID uint, postID uint) (bool, error)

	// AddComment attaches a comment to a post.
	AddComment(userID uint, postID uint, comment string) (*models.PostComment, error)

	// UpdateComment edits a comment; only its author may edit.
	UpdateComment(userID uint, commentID uint, comment string) (*models.PostComment, error)

	// DeleteComment removes a comment; only its author may delete.
	DeleteComment(userID uint, commentID uint) error

	Service
}
