package service

import (
	"testing"

	"github.com/uplink-social/uplink/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerLoginUser(t *testing.T, env *testEnv) string {
	t.Helper()

	_, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "jane@uplink.test",
		Username:        "janeroe",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)

	return "jane@uplink.test"
}

func TestLoginIdentifier(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	pair, user, err := env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	// Username works as an identifier too.
	_, _, err = env.auth.LoginIdentifier("janeroe", "Str0ng!pass")
	require.NoError(t, err)

	_, fresh, err := env.user.AccountExists(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLogin)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	// Wrong password and unknown identifier fail identically.
	_, _, err := env.auth.LoginIdentifier(email, "Wr0ng!pass")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidCredentials))

	_, _, err = env.auth.LoginIdentifier("nobody@uplink.test", "Str0ng!pass")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidCredentials))
}

func TestLoginInactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	_, user, err := env.user.EmailExists(email)
	require.NoError(t, err)
	require.NoError(t, env.user.UpdateAccountInfo(user.ID, map[string]any{"is_active": false}))

	_, _, err = env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidCredentials))
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	pair, _, err := env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.NoError(t, err)

	access, err := env.auth.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	// An access token cannot be used to refresh.
	_, err = env.auth.Refresh(pair.Access)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidToken))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	pair, _, err := env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(pair.Refresh))

	_, err = env.auth.Refresh(pair.Refresh)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidToken))

	// Revoking again fails deterministically.
	err = env.auth.Logout(pair.Refresh)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidToken))
}

func TestLogoutMalformedToken(t *testing.T) {
	env := newTestEnv(t)

	err := env.auth.Logout("not-a-token")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyInvalidToken))
}

func TestLogoutLeavesOtherSessionsAlive(t *testing.T) {
	env := newTestEnv(t)
	email := registerLoginUser(t, env)

	first, _, err := env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.NoError(t, err)

	second, _, err := env.auth.LoginIdentifier(email, "Str0ng!pass")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(first.Refresh))

	_, err = env.auth.Refresh(second.Refresh)
	require.NoError(t, err)
}
