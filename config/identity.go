package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

var _ yaml.Marshaler = (*Identity)(nil)

// Identity is the node signing key, configured as a hex-encoded 32-byte
// ed25519 seed. All issued tokens are signed with the derived private key.
type Identity struct {
	seed string
	key  ed25519.PrivateKey
}

func NewIdentityFromSeed(seed string) *Identity {
	return &Identity{seed: seed}
}

func (i *Identity) derive() error {
	raw, err := hex.DecodeString(i.seed)
	if err != nil {
		return err
	}

	if len(raw) != ed25519.SeedSize {
		return errors.New("identity seed must be 32 bytes")
	}

	i.key = ed25519.NewKeyFromSeed(raw)

	return nil
}

func (i *Identity) Valid() bool {
	if i.key != nil {
		return true
	}

	return i.derive() == nil
}

func (i *Identity) PrivateKey() ed25519.PrivateKey {
	if len(i.key) != ed25519.PrivateKeySize {
		if err := i.derive(); err != nil {
			panic(err)
		}
	}

	return i.key
}

func (i *Identity) PublicKey() ed25519.PublicKey {
	return i.PrivateKey().Public().(ed25519.PublicKey)
}

func (i Identity) MarshalYAML() (interface{}, error) {
	return i.seed, nil
}

func identityConfigHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Identity{}) {
			return data, nil
		}

		var identity Identity
		if err := identity.DecodeMapstructure(data); err != nil {
			return nil, err
		}

		return identity, nil
	}
}

func (i *Identity) DecodeMapstructure(value interface{}) error {
	seed, ok := value.(string)
	if !ok {
		return errors.New("identity must be a string")
	}

	identity := NewIdentityFromSeed(seed)
	if err := identity.derive(); err != nil {
		return err
	}

	*i = *identity

	return nil
}
