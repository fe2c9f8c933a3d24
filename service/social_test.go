package service

import (
	"testing"

	"github.com/uplink-social/uplink/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow(t *testing.T) {
	env := newTestEnv(t)
	social := env.social()

	aliceID := registerTestUser(t, env, "Alice One")
	bobID := registerTestUser(t, env, "Bob Two")

	following, err := social.ToggleFollow(aliceID, bobID)
	require.NoError(t, err)
	assert.True(t, following)

	followers, err := social.Followers(bobID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, aliceID, followers[0].FollowerID)
	assert.Equal(t, "Alice One", followers[0].Follower.Name)

	followed, err := social.Following(aliceID)
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, bobID, followed[0].FollowingID)

	// The second toggle unfollows.
	following, err = social.ToggleFollow(aliceID, bobID)
	require.NoError(t, err)
	assert.False(t, following)

	followers, err = social.Followers(bobID)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestToggleFollowSelf(t *testing.T) {
	env := newTestEnv(t)

	aliceID := registerTestUser(t, env, "Alice One")

	_, err := env.social().ToggleFollow(aliceID, aliceID)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeySelfFollow))
}

func TestToggleFollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	aliceID := registerTestUser(t, env, "Alice One")

	_, err := env.social().ToggleFollow(aliceID, 999)
	require.Error(t, err)
	assert.True(t, core.IsErrorKey(err, core.ErrKeyUserNotFound))
}
