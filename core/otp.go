package core

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// ResetOTPValidity is the window during which a password-reset code is
// accepted, measured from the moment it was issued. Expiry is checked
// lazily at confirm time; there is no background sweep.
const ResetOTPValidity = 10 * time.Minute

const (
	resetOTPMin = 10000
	resetOTPMax = 99999
)

// GenerateResetOTP returns a random 5-digit reset code in [10000, 99999].
func GenerateResetOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(resetOTPMax-resetOTPMin+1))
	if err != nil {
		panic(err)
	}

	return strconv.FormatInt(n.Int64()+resetOTPMin, 10)
}

const PASSWORD_RESET_SERVICE = "password_reset"

type PasswordResetService interface {
	// SendPasswordReset issues a fresh reset code for the account with the
	// given email, overwriting any prior unconsumed code, and emails it.
	SendPasswordReset(email string) error

	// ResetPassword validates the code and sets the new password. The code
	// must match the stored one and be younger than ResetOTPValidity.
	ResetPassword(email string, otp string, password string, confirmPassword string) error

	Service
}
