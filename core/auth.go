package core

import "github.com/uplink-social/uplink/db/models"

const AUTH_SERVICE = "auth"

const AUTH_COOKIE_NAME = "auth_token"
const AUTH_TOKEN_NAME = "auth_token"

type AuthService interface {
	// LoginIdentifier authenticates a user by email, username or phone
	// number plus password. Resolution failures and wrong passwords both
	// surface as a single invalid-credentials error.
	LoginIdentifier(identifier string, password string) (TokenPair, *models.User, error)

	// Logout revokes the given refresh token. Revoking an already revoked,
	// malformed or expired token fails deterministically.
	Logout(refreshToken string) error

	// Refresh exchanges a valid, non-revoked refresh token for a fresh
	// access token.
	Refresh(refreshToken string) (string, error)

	// ValidLoginByUserObj checks if the provided password is valid for the
	// given user.
	ValidLoginByUserObj(user *models.User, password string) bool

	Service
}
