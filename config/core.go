package config

import (
	"errors"
)

var _ Defaults = (*CoreConfig)(nil)
var _ Validator = (*CoreConfig)(nil)

type CoreConfig struct {
	DB       DatabaseConfig `mapstructure:"db"`
	Domain   string         `mapstructure:"domain"`
	AppName  string         `mapstructure:"app_name"`
	Identity Identity       `mapstructure:"identity"`
	Log      LogConfig      `mapstructure:"log"`
	Mail     MailConfig     `mapstructure:"mail"`
	Port     uint           `mapstructure:"port"`
}

func (c CoreConfig) Validate() error {
	if c.Domain == "" {
		return errors.New("core.domain is required")
	}
	if c.AppName == "" {
		return errors.New("core.app_name is required")
	}
	if c.Port == 0 {
		return errors.New("core.port is required")
	}
	if !c.Identity.Valid() {
		return errors.New("core.identity must be a hex-encoded 32-byte seed")
	}

	return c.DB.Validate()
}

func (c CoreConfig) Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app_name": "UpLink",
		"port":     8080,
	}
}
