package api

import (
	"net/http"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/middleware"

	"github.com/gorilla/mux"
)

const API_SERVICE = "api.uplink"

var _ core.API = (*API)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: API_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			api, opts, err := NewAPI()
			if err != nil {
				return nil, nil, err
			}

			core.RegisterAPI(api.Name(), api)

			return api, opts, nil
		},
		Depends: []string{
			core.AUTH_SERVICE,
			core.USER_SERVICE,
			core.PASSWORD_RESET_SERVICE,
			core.CATEGORY_SERVICE,
			core.POST_SERVICE,
			core.SOCIAL_SERVICE,
			core.MESSAGE_SERVICE,
		},
	})
}

type API struct {
	ctx      core.Context
	logger   *core.Logger
	auth     core.AuthService
	user     core.UserService
	reset    core.PasswordResetService
	category core.CategoryService
	post     core.PostService
	social   core.SocialService
	message  core.MessageService
}

func NewAPI() (*API, []core.ContextBuilderOption, error) {
	api := &API{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			api.ctx = ctx
			api.logger = ctx.ServiceLogger(api)
			api.auth = core.GetService[core.AuthService](ctx, core.AUTH_SERVICE)
			api.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			api.reset = core.GetService[core.PasswordResetService](ctx, core.PASSWORD_RESET_SERVICE)
			api.category = core.GetService[core.CategoryService](ctx, core.CATEGORY_SERVICE)
			api.post = core.GetService[core.PostService](ctx, core.POST_SERVICE)
			api.social = core.GetService[core.SocialService](ctx, core.SOCIAL_SERVICE)
			api.message = core.GetService[core.MessageService](ctx, core.MESSAGE_SERVICE)
			return nil
		}),
	)

	return api, opts, nil
}

func (a *API) ID() string {
	return API_SERVICE
}

func (a *API) Name() string {
	return "uplink"
}

// requireAuth wraps a handler with the access token middleware.
func (a *API) requireAuth(handler http.HandlerFunc) http.Handler {
	mw := middleware.AuthMiddleware(middleware.AuthMiddlewareOptions{
		Context: a.ctx,
		Purpose: core.JWTPurposeAccess,
	})

	return mw(handler)
}

func (a *API) Configure(router *mux.Router) error {
	// auth
	router.HandleFunc("/auth/register", a.register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", a.login).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", a.logout).Methods(http.MethodPost)
	router.HandleFunc("/auth/refresh", a.refresh).Methods(http.MethodPost)
	router.HandleFunc("/auth/password-reset/request", a.passwordResetRequest).Methods(http.MethodPost)
	router.HandleFunc("/auth/password-reset/confirm", a.passwordResetConfirm).Methods(http.MethodPost)

	// account
	router.Handle("/account", a.requireAuth(a.getAccount)).Methods(http.MethodGet)
	router.Handle("/account/profile", a.requireAuth(a.updateProfile)).Methods(http.MethodPatch)

	// categories
	router.Handle("/categories", a.requireAuth(a.listCategories)).Methods(http.MethodGet)
	router.Handle("/categories/{slug}", a.requireAuth(a.getCategory)).Methods(http.MethodGet)
	router.Handle("/categories", a.requireAuth(a.createCategory)).Methods(http.MethodPost)
	router.Handle("/categories/{slug}", a.requireAuth(a.updateCategory)).Methods(http.MethodPut)
	router.Handle("/categories/{slug}", a.requireAuth(a.deleteCategory)).Methods(http.MethodDelete)

	// posts
	router.Handle("/posts", a.requireAuth(a.listPosts)).Methods(http.MethodGet)
	router.Handle("/posts/{id:[0-9]+}", a.requireAuth(a.getPost)).Methods(http.MethodGet)
	router.Handle("/posts", a.requireAuth(a.createPost)).Methods(http.MethodPost)
	router.Handle("/posts/{id:[0-9]+}", a.requireAuth(a.updatePost)).Methods(http.MethodPut)
	router.Handle("/posts/{id:[0-9]+}", a.requireAuth(a.deletePost)).Methods(http.MethodDelete)
	router.Handle("/posts/{id:[0-9]+}/like", a.requireAuth(a.toggleLike)).Methods(http.MethodPost)
	router.Handle("/posts/{id:[0-9]+}/comments", a.requireAuth(a.addComment)).Methods(http.MethodPost)
	router.Handle("/comments/{id:[0-9]+}", a.requireAuth(a.updateComment)).Methods(http.MethodPut)
	router.Handle("/comments/{id:[0-9]+}", a.requireAuth(a.deleteComment)).Methods(http.MethodDelete)

	// social
	router.Handle("/users/{id:[0-9]+}/posts", a.requireAuth(a.listUserPosts)).Methods(http.MethodGet)
	router.Handle("/users/{id:[0-9]+}/followers", a.requireAuth(a.listFollowers)).Methods(http.MethodGet)
	router.Handle("/users/{id:[0-9]+}/following", a.requireAuth(a.listFollowing)).Methods(http.MethodGet)
	router.Handle("/users/{id:[0-9]+}/follow", a.requireAuth(a.toggleFollow)).Methods(http.MethodPost)

	// messages
	router.Handle("/messages", a.requireAuth(a.sendMessage)).Methods(http.MethodPost)
	router.Handle("/messages/inbox", a.requireAuth(a.inbox)).Methods(http.MethodGet)
	router.Handle("/messages/{id:[0-9]+}", a.requireAuth(a.getMessage)).Methods(http.MethodGet)
	router.Handle("/messages/history/{peer:[0-9]+}", a.requireAuth(a.history)).Methods(http.MethodGet)

	return nil
}

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	if e := core.AsDomainError(err); e != nil {
		return e.HttpStatus()
	}

	return http.StatusInternalServerError
}
