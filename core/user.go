package core

import "github.com/uplink-social/uplink/db/models"

const USER_SERVICE = "user"

// RegisterParams carries the registration inputs. Username, PhoneNumber and
// Image are optional.
type RegisterParams struct {
	Name            string
	Email           string
	Username        string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
	Image           string
}

// ProfileUpdate carries a partial profile update; nil fields are left
// untouched.
type ProfileUpdate struct {
	Name        *string
	Username    *string
	PhoneNumber *string
	Image       *string
}

type UserService interface {
	// Exists checks if a record with the given conditions exists.
	Exists(model any, conditions map[string]any) (bool, any, error)

	// EmailExists checks if an email already exists in the system. Matching
	// is case-insensitive.
	EmailExists(email string) (bool, *models.User, error)

	// UsernameExists checks if a username already exists in the system.
	// Matching is case-insensitive.
	UsernameExists(username string) (bool, *models.User, error)

	// PhoneExists checks if a phone number already exists in the system.
	PhoneExists(phone string) (bool, *models.User, error)

	// AccountExists checks if an account with the given ID exists.
	AccountExists(id uint) (bool, *models.User, error)

	// ResolveIdentifier finds the single account whose email, username
	// (both case-insensitive) or phone number equals the identifier.
	ResolveIdentifier(identifier string) (*models.User, error)

	// HashPassword hashes the provided password using bcrypt.
	HashPassword(password string) (string, error)

	// CreateAccount registers a new account. The username is allocated from
	// the supplied username or the slugified display name, retrying with a
	// random suffix on conflict up to a bounded number of attempts.
	CreateAccount(params RegisterParams) (*models.User, error)

	// UpdateAccountInfo updates raw account columns for the given user ID.
	UpdateAccountInfo(userId uint, info map[string]any) error

	// UpdateProfile applies a partial profile update and returns the
	// updated account.
	UpdateProfile(userId uint, update ProfileUpdate) (*models.User, error)

	Service
}
