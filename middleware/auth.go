package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/uplink-social/uplink/core"
)

type AuthTokenContextKeyType string
type UserIdContextKeyType string

const (
	AUTH_TOKEN_CONTEXT_KEY      AuthTokenContextKeyType = "auth_token"
	DEFAULT_USER_ID_CONTEXT_KEY UserIdContextKeyType    = "user_id"
)

type FindAuthTokenFunc func(r *http.Request) string

func FindAuthToken(r *http.Request, cookieName string, queryParam string) string {
	authHeader := ParseAuthTokenHeader(r.Header)

	if authHeader != "" {
		return authHeader
	}

	if cookie, err := r.Cookie(cookieName); cookie != nil && err == nil {
		return cookie.Value
	}

	return r.FormValue(queryParam)
}

func ParseAuthTokenHeader(headers http.Header) string {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	authHeader = strings.TrimPrefix(authHeader, "Bearer ")
	authHeader = strings.TrimPrefix(authHeader, "bearer ")

	return authHeader
}

type AuthMiddlewareOptions struct {
	Context        core.Context
	FindToken      FindAuthTokenFunc
	Purpose        core.JWTPurpose
	AuthContextKey string
	EmptyAllowed   bool
}

// AuthMiddleware verifies the request token and stashes the account ID
// and raw token on the request context.
func AuthMiddleware(options AuthMiddlewareOptions) func(http.Handler) http.Handler {
	config := options.Context.Config()

	if options.AuthContextKey == "" {
		options.AuthContextKey = string(DEFAULT_USER_ID_CONTEXT_KEY)
	}

	if options.FindToken == nil {
		options.FindToken = func(r *http.Request) string {
			return FindAuthToken(r, core.AUTH_COOKIE_NAME, core.AUTH_TOKEN_NAME)
		}
	}

	domain := config.Config().Core.Domain
	privateKey := config.Config().Core.Identity.PrivateKey()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authToken := options.FindToken(r)

			if authToken == "" {
				if !options.EmptyAllowed {
					http.Error(w, "Invalid JWT", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claim, err := core.JWTVerifyPurpose(authToken, domain, privateKey, options.Purpose)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			userId, err := strconv.ParseUint(claim.Subject, 10, 64)
			if err != nil {
				http.Error(w, core.ErrJWTInvalid.Error(), http.StatusBadRequest)
				return
			}

			user := core.GetService[core.UserService](options.Context, core.USER_SERVICE)

			exists, account, err := user.AccountExists(uint(userId))
			if !exists || err != nil || !account.IsActive {
				http.Error(w, core.ErrJWTInvalid.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIdContextKeyType(options.AuthContextKey), uint(userId))
			ctx = context.WithValue(ctx, AUTH_TOKEN_CONTEXT_KEY, authToken)
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext returns the authenticated account ID placed on the
// request context by AuthMiddleware.
func GetUserFromContext(ctx context.Context, key ...string) uint {
	realKey := string(DEFAULT_USER_ID_CONTEXT_KEY)

	if len(key) > 0 {
		realKey = key[0]
	}

	userId, ok := ctx.Value(UserIdContextKeyType(realKey)).(uint)
	if !ok {
		panic("user id not found in context")
	}

	return userId
}

// GetAuthTokenFromContext returns the raw token placed on the request
// context by AuthMiddleware.
func GetAuthTokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(AUTH_TOKEN_CONTEXT_KEY).(string)
	if !ok {
		return ""
	}

	return token
}
