package service

import (
	"testing"
	"time"

	"github.com/uplink-social/uplink/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestReset(t *testing.T, env *testEnv, email string) string {
	t.Helper()

	require.NoError(t, env.reset.SendPasswordReset(email))

	mail := env.mailer.LastTo(email)
	require.NotNil(t, mail)
	require.Equal(t, core.MAILER_TPL_PASSWORD_RESET_OTP, mail.Template)

	otp, ok := mail.BodyVars["OTP"].(string)
	require.True(t, ok)
	require.Len(t, otp, 5)

	return otp
}

func TestSendPasswordReset(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	otp := requestReset(t, env, email)

	_, user, err := env.user.EmailExists(email)
	require.NoError(t, err)
	assert.Equal(t, otp, user.ResetOTP)
	require.NotNil(t, user.OTPCreatedAt)
	assert.WithinDuration(t, time.Now(), *user.OTPCreatedAt, time.Minute)
}

func TestSendPasswordResetUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	err := env.reset.SendPasswordReset("nobody@uplink.test")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyUserNotFound))
}

func TestSendPasswordResetOverwritesPriorCode(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	first := requestReset(t, env, email)
	second := requestReset(t, env, email)

	// Only the newest code is accepted.
	if first != second {
		err := env.reset.ResetPassword(email, first, "N3w!password", "N3w!password")
		require.Error(t, err)
		assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidOTP))
	}

	require.NoError(t, env.reset.ResetPassword(email, second, "N3w!password", "N3w!password"))
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	otp := requestReset(t, env, email)

	require.NoError(t, env.reset.ResetPassword(email, otp, "N3w!password", "N3w!password"))

	// Old password no longer works, new one does.
	_, _, err := env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.Error(t, err)

	_, _, err = env.auth.LoginIdentifier(email, "N3w!password")
	require.NoError(t, err)

	// The code is consumed and cannot be replayed.
	err = env.reset.ResetPassword(email, otp, "An0ther!pass", "An0ther!pass")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyOTPNotIssued))

	mail := env.mailer.LastTo(email)
	require.NotNil(t, mail)
	assert.Equal(t, core.MAILER_TPL_PASSWORD_CHANGED, mail.Template)
}

func TestResetPasswordWrongOTP(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	otp := requestReset(t, env, email)

	wrong := "10000"
	if wrong == otp {
		wrong = "10001"
	}

	err := env.reset.ResetPassword(email, wrong, "N3w!password", "N3w!password")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidOTP))

	// The password is untouched on failure.
	_, _, err = env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.NoError(t, err)
}

func TestResetPasswordExpiredOTP(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	otp := requestReset(t, env, email)

	_, user, err := env.user.EmailExists(email)
	require.NoError(t, err)

	stale := time.Now().Add(-core.ResetOTPValidity - time.Minute)
	require.NoError(t, env.user.UpdateAccountInfo(user.ID, map[string]any{"otp_created_at": &stale}))

	err = env.reset.ResetPassword(email, otp, "N3w!password", "N3w!password")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyOTPExpired))
}

func TestResetPasswordWithoutRequest(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	err := env.reset.ResetPassword(email, "12345", "N3w!password", "N3w!password")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyOTPNotIssued))
}

func TestResetPasswordMismatch(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	otp := requestReset(t, env, email)

	err := env.reset.ResetPassword(email, otp, "N3w!password", "Different!1")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyPasswordMismatch))

	// A failed confirm does not consume the code.
	require.NoError(t, env.reset.ResetPassword(email, otp, "N3w!password", "N3w!password"))
}
