package api

import (
	"time"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db/models"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Username        string `json:"username,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Image           string `json:"image,omitempty"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	Token core.TokenPair `json:"token"`
	User  UserResponse   `json:"user"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Username    *string `json:"username,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Image       *string `json:"image,omitempty"`
}

type UserResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Username    string     `json:"username,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Image       string     `json:"image,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CategoryRequest struct {
	Title string `json:"title"`
}

type CategoryResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type CategoryDetailResponse struct {
	CategoryResponse
	Posts []PostResponse `json:"posts"`
}

type PostRequest struct {
	Title       string   `json:"title"`
	CategoryID  uint     `json:"category_id,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type PostResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Author      UserResponse      `json:"author"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Images      []string          `json:"images,omitempty"`
	LikeCount   int               `json:"like_count"`
	Comments    []CommentResponse `json:"comments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type FollowResponse struct {
	Following bool `json:"following"`
}

type FollowUserResponse struct {
	User UserResponse `json:"user"`
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id"`
	Body       string `json:"body"`
}

type MessageResponse struct {
	ID         uint       `json:"id"`
	SenderID   uint       `json:"sender_id"`
	ReceiverID uint       `json:"receiver_id"`
	Body       string     `json:"body"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func newUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.Image,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}

	if user.Username != nil {
		resp.Username = *user.Username
	}

	if user.PhoneNumber != nil {
		resp.PhoneNumber = *user.PhoneNumber
	}

	return resp
}

func newCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:    category.ID,
		Title: category.Title,
		Slug:  category.Slug,
		Image: category.Image,
	}
}

func newCommentResponse(comment *models.PostComment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}
}

func newPostResponse(post *models.Post) PostResponse {
	resp := PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Author:      newUserResponse(&post.User),
		LikeCount:   len(post.Likes),
		CreatedAt:   post.CreatedAt,
	}

	if post.Category != nil {
		category := newCategoryResponse(post.Category)
		resp.Category = &category
	}

	for _, image := range post.Images {
		resp.Images = append(resp.Images, image.Image)
	}

	for i := range post.Comments {
		resp.Comments = append(resp.Comments, newCommentResponse(&post.Comments[i]))
	}

	return resp
}

func newMessageResponse(message *models.Message) MessageResponse {
	return MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Body:       message.Body,
		IsRead:     message.IsRead,
		ReadAt:     message.ReadAt,
		CreatedAt:  message.CreatedAt,
	}
}
