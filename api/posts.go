package api

import (
	"net/http"
	"strconv"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db/models"
	"github.com/uplink-social/uplink/middleware"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"go.lumeweb.com/httputil"
)

func pathID(r *http.Request, name string) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)[name], 10, 64)

	return uint(id)
}

func (a *API) listPosts(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	posts, err := a.post.GetPosts()
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(lo.Map(posts, func(post models.Post, _ int) PostResponse {
		return newPostResponse(&post)
	}))
}

func (a *API) listUserPosts(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	posts, err := a.post.GetUserPosts(pathID(r, "id"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(lo.Map(posts, func(post models.Post, _ int) PostResponse {
		return newPostResponse(&post)
	}))
}

func (a *API) getPost(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	post, err := a.post.GetPost(pathID(r, "id"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(newPostResponse(post))
}

func (a *API) createPost(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	var request PostRequest
	if ctx.Decode(&request) != nil {
		return
	}

	post, err := a.post.CreatePost(userID, core.PostParams{
		Title:       request.Title,
		CategoryID:  request.CategoryID,
		Description: request.Description,
		ImageRefs:   request.Images,
	})
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	ctx.Encode(newPostResponse(post))
}

func (a *API) updatePost(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	var request PostRequest
	if ctx.Decode(&request) != nil {
		return
	}

	post, err := a.post.UpdatePost(userID, pathID(r, "id"), core.PostParams{
		Title:       request.Title,
		CategoryID:  request.CategoryID,
		Description: request.Description,
		ImageRefs:   request.Images,
	})
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(newPostResponse(post))
}

func (a *API) deletePost(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	if err := a.post.DeletePost(userID, pathID(r, "id")); err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) toggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	liked, err := a.post.ToggleLike(userID, pathID(r, "id"))
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(LikeResponse{Liked: liked})
}

func (a *API) addComment(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	var request CommentRequest
	if ctx.Decode(&request) != nil {
		return
	}

	comment, err := a.post.AddComment(userID, pathID(r, "id"), request.Comment)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	ctx.Encode(newCommentResponse(comment))
}

func (a *API) updateComment(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	var request CommentRequest
	if ctx.Decode(&request) != nil {
		return
	}

	comment, err := a.post.UpdateComment(userID, pathID(r, "id"), request.Comment)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(newCommentResponse(comment))
}

func (a *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	if err := a.post.DeleteComment(userID, pathID(r, "id")); err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
