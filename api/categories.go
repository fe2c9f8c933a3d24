package api

import (
	"net/http"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db/models"
	"github.com/uplink-social/uplink/middleware"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"go.lumeweb.com/httputil"
)

// requireStaff guards the category mutations; only staff accounts may
// manage the shared taxonomy.
func (a *API) requireStaff(w http.ResponseWriter, r *http.Request) bool {
	ctx := httputil.Context(r, w)

	userID := middleware.GetUserFromContext(r.Context())

	exists, user, err := a.user.AccountExists(userID)
	if err != nil || !exists || !user.IsStaff {
		err = core.NewDomainError(core.ErrKeyForbidden, nil)
		_ = ctx.Error(err, errorStatus(err))
		return false
	}

	return true
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	categories, err := a.category.GetCategories()
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(lo.Map(categories, func(category models.Category, _ int) CategoryResponse {
		return newCategoryResponse(&category)
	}))
}

func (a *API) getCategory(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	category, err := a.category.GetCategoryBySlug(mux.Vars(r)["slug"])
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	resp := CategoryDetailResponse{
		CategoryResponse: newCategoryResponse(category),
		Posts:            []PostResponse{},
	}

	for i := range category.Posts {
		resp.Posts = append(resp.Posts, newPostResponse(&category.Posts[i]))
	}

	ctx.Encode(resp)
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	if !a.requireStaff(w, r) {
		return
	}

	var request CategoryRequest
	if ctx.Decode(&request) != nil {
		return
	}

	category, err := a.category.CreateCategory(request.Title)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	ctx.Encode(newCategoryResponse(category))
}

func (a *API) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	if !a.requireStaff(w, r) {
		return
	}

	var request CategoryRequest
	if ctx.Decode(&request) != nil {
		return
	}

	category, err := a.category.UpdateCategory(mux.Vars(r)["slug"], request.Title)
	if err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	ctx.Encode(newCategoryResponse(category))
}

func (a *API) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := httputil.Context(r, w)

	if !a.requireStaff(w, r) {
		return
	}

	if err := a.category.DeleteCategory(mux.Vars(r)["slug"]); err != nil {
		_ = ctx.Error(err, errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
