package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"

func TestIdentityFromSeed(t *testing.T) {
	identity := NewIdentityFromSeed(testSeed)

	require.True(t, identity.Valid())
	assert.Len(t, identity.PrivateKey(), 64)
	assert.Len(t, identity.PublicKey(), 32)

	// The same seed always derives the same key.
	other := NewIdentityFromSeed(testSeed)
	assert.Equal(t, identity.PrivateKey(), other.PrivateKey())
}

func TestIdentityInvalidSeed(t *testing.T) {
	for _, seed := range []string{"", "zz", "0102", testSeed + "ff"} {
		assert.False(t, NewIdentityFromSeed(seed).Valid(), "seed %q", seed)
	}
}

func TestIdentityMarshalYAML(t *testing.T) {
	identity := NewIdentityFromSeed(testSeed)

	out, err := identity.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, testSeed, out)
}

func validCoreConfig(t *testing.T) CoreConfig {
	t.Helper()

	return CoreConfig{
		Domain:   "uplink.test",
		AppName:  "UpLink",
		Port:     8080,
		Identity: *NewIdentityFromSeed(testSeed),
		DB: DatabaseConfig{
			Type: "sqlite",
			File: t.TempDir() + "/uplink.db",
		},
	}
}

func TestCoreConfigValidate(t *testing.T) {
	cfg := validCoreConfig(t)
	require.NoError(t, cfg.Validate())

	missingDomain := validCoreConfig(t)
	missingDomain.Domain = ""
	assert.Error(t, missingDomain.Validate())

	missingPort := validCoreConfig(t)
	missingPort.Port = 0
	assert.Error(t, missingPort.Validate())

	badIdentity := validCoreConfig(t)
	badIdentity.Identity = *NewIdentityFromSeed("nope")
	assert.Error(t, badIdentity.Validate())

	badDB := validCoreConfig(t)
	badDB.DB = DatabaseConfig{Type: "sqlite"}
	assert.Error(t, badDB.Validate())
}

func TestManagerFromConfigInit(t *testing.T) {
	core := validCoreConfig(t)
	cm := NewManagerFromConfig(&Config{Core: core})

	require.NoError(t, cm.Init())
	assert.Equal(t, "uplink.test", cm.Config().Core.Domain)

	core.Domain = ""
	cm = NewManagerFromConfig(&Config{Core: core})
	assert.Error(t, cm.Init())
}
