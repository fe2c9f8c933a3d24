package service

import (
	"strings"
	"testing"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "Jane.Roe@Uplink.Test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane.roe@uplink.test", user.Email)
	require.NotNil(t, user.Username)
	assert.Equal(t, "jane-roe", *user.Username)
	assert.True(t, user.IsActive)

	// Only the bcrypt hash is stored.
	assert.NotEqual(t, "Str0ng!pass", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"))

	mail := env.mailer.LastTo("jane.roe@uplink.test")
	require.NotNil(t, mail)
	assert.Equal(t, core.MAILER_TPL_WELCOME, mail.Template)
}

func TestCreateAccountMissingFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.user.CreateAccount(core.RegisterParams{})
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyValidationFailed))
}

func TestCreateAccountInvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "not-an-email",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.Error(t, err)
	require.True(t, core.IsErrorKey(err, core.ErrKeyValidationFailed))
	assert.Contains(t, err.Error(), "email address is invalid")
}

func TestCreateAccountWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "jane@uplink.test",
		Password:        "short",
		ConfirmPassword: "short",
	})
	require.Error(t, err)
	require.True(t, core.IsErrorKey(err, core.ErrKeyWeakPassword))

	// All violated rules are reported at once.
	assert.Contains(t, err.Error(), "at least 8 characters")
	assert.Contains(t, err.Error(), "at least one uppercase letter")
	assert.Contains(t, err.Error(), "at least one digit")
	assert.Contains(t, err.Error(), "at least one symbol")
}

func TestCreateAccountPasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "jane@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass2",
	})
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyPasswordMismatch))
}

func TestCreateAccountMismatchReportedBeforeWeakness(t *testing.T) {
	env := newTestEnv(t)

	// Both checks would fail; the mismatch is reported first.
	_, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "jane@uplink.test",
		Password:        "short",
		ConfirmPassword: "different",
	})
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyPasswordMismatch))
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	params := core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "jane@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	}

	_, err := env.user.CreateAccount(params)
	require.NoError(t, err)

	params.Name = "Other Jane"
	_, err = env.user.CreateAccount(params)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyDuplicateEmail))
}

func TestCreateAccountUsernameSuffix(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "John Doe",
		Email:           "john1@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "john-doe", *first.Username)

	second, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "John Doe",
		Email:           "john2@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)

	// The taken base name gets a random 4-digit suffix.
	assert.Regexp(t, `^john-doe-\d{4}$`, *second.Username)
}

func TestCreateAccountDefaultUsernameBase(t *testing.T) {
	env := newTestEnv(t)

	// A symbol-only display name slugifies to nothing; the allocator
	// falls back to "user".
	first, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "!!!",
		Email:           "bang1@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)
	require.NotNil(t, first.Username)
	assert.Equal(t, "user", *first.Username)

	second, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "???",
		Email:           "bang2@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)
	require.NotNil(t, second.Username)
	assert.Regexp(t, `^user-\d{4}$`, *second.Username)
}

func TestAllocateUsernameBounded(t *testing.T) {
	env := newTestEnv(t)

	// Pin the suffix so every candidate after the base collides.
	env.user.suffix = func() string { return "1111" }

	for _, username := range []string{"crowded", "crowded-1111"} {
		name := username
		taken := models.User{
			Name:         "Taken",
			Email:        name + "@uplink.test",
			Username:     &name,
			PasswordHash: "x",
			IsActive:     true,
		}
		require.NoError(t, env.ctx.DB().Create(&taken).Error)
	}

	_, err := env.user.allocateUsername("crowded")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyAllocationExhausted))
}

func TestCreateAccountUsernameConflictRetried(t *testing.T) {
	env := newTestEnv(t)

	// Simulate losing the insert race: the first allocation is taken by
	// another registration between the free check and the insert.
	var calls int
	env.user.allocate = func(base string) (string, error) {
		calls++
		if calls == 1 {
			taken := "ray-roe"
			winner := models.User{
				Name:         "Other Ray",
				Email:        "other.ray@uplink.test",
				Username:     &taken,
				PasswordHash: "x",
				IsActive:     true,
			}
			require.NoError(t, env.ctx.DB().Create(&winner).Error)

			return taken, nil
		}

		return env.user.allocateUsername(base)
	}

	user, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Ray Roe",
		Email:           "ray@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)
	require.NotNil(t, user.Username)

	// The loser re-allocates instead of reporting a duplicate email.
	assert.Equal(t, 2, calls)
	assert.Regexp(t, `^ray-roe-\d{4}$`, *user.Username)
}

func TestResolveIdentifier(t *testing.T) {
	env := newTestEnv(t)

	phone := "+15550001111"
	created, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "jane@uplink.test",
		Username:        "janeroe",
		PhoneNumber:     phone,
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)

	for _, identifier := range []string{"jane@uplink.test", "JANE@UPLINK.TEST", "janeroe", phone} {
		user, err := env.user.ResolveIdentifier(identifier)
		require.NoError(t, err, "identifier %q", identifier)
		assert.Equal(t, created.ID, user.ID)
	}

	_, err = env.user.ResolveIdentifier("nobody@uplink.test")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyUserNotFound))
}

func TestResolveIdentifierAmbiguous(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Roe",
		Email:           "alias@uplink.test",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)

	otherID := registerTestUser(t, env, "John Doe")

	// Another account claiming the email as its username makes the
	// identifier match two different accounts.
	alias := "alias@uplink.test"
	_, err = env.user.UpdateProfile(otherID, core.ProfileUpdate{Username: &alias})
	require.NoError(t, err)

	_, err = env.user.ResolveIdentifier("alias@uplink.test")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyAmbiguousIdentifier))

	// The same account matching on both email and username is not
	// ambiguous.
	own := "jane.self@uplink.test"
	ownEmailUser, err := env.user.CreateAccount(core.RegisterParams{
		Name:            "Jane Self",
		Email:           own,
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	})
	require.NoError(t, err)

	_, err = env.user.UpdateProfile(ownEmailUser.ID, core.ProfileUpdate{Username: &own})
	require.NoError(t, err)

	resolved, err := env.user.ResolveIdentifier(own)
	require.NoError(t, err)
	assert.Equal(t, ownEmailUser.ID, resolved.ID)

	// Ambiguity surfaces through login as well rather than collapsing
	// into bad credentials.
	_, _, err = env.auth.LoginIdentifier("alias@uplink.test", "Str0ng!pass")
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyAmbiguousIdentifier))
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)

	userID := registerTestUser(t, env, "Jane Roe")
	otherID := registerTestUser(t, env, "John Doe")

	_, other, err := env.user.AccountExists(otherID)
	require.NoError(t, err)

	name := "Jane R."
	updated, err := env.user.UpdateProfile(userID, core.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane R.", updated.Name)

	// Taking another account's username conflicts.
	_, err = env.user.UpdateProfile(userID, core.ProfileUpdate{Username: other.Username})
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyDuplicateUsername))
}
