package config

import (
	"errors"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

var _ Defaults = (*DatabaseConfig)(nil)
var _ Validator = (*DatabaseConfig)(nil)

type DatabaseConfig struct {
	Type     string       `mapstructure:"type"`
	File     string       `mapstructure:"file"`
	Charset  string       `mapstructure:"charset"`
	Host     string       `mapstructure:"host"`
	Name     string       `mapstructure:"name"`
	Password string       `mapstructure:"password"`
	Port     int          `mapstructure:"port"`
	Username string       `mapstructure:"username"`
	Cache    *CacheConfig `mapstructure:"cache"`
}

func (d DatabaseConfig) Validate() error {
	if d.Type == "sqlite" {
		if d.File == "" {
			return errors.New("core.db.file is required")
		}
	}

	if d.Type == "mysql" {
		if d.Host == "" {
			return errors.New("core.db.host is required")
		}
		if d.Port == 0 {
			return errors.New("core.db.port is required")
		}
		if d.Username == "" {
			return errors.New("core.db.username is required")
		}
		if d.Password == "" {
			return errors.New("core.db.password is required")
		}
		if d.Name == "" {
			return errors.New("core.db.name is required")
		}
	}

	return nil
}

func (d DatabaseConfig) Defaults() map[string]interface{} {
	def := map[string]interface{}{
		"type":    "sqlite",
		"host":    "localhost",
		"charset": "utf8mb4",
		"port":    3306,
		"name":    "uplink",
	}

	if d.Type == "sqlite" || d.Type == "" {
		def["file"] = "uplink.db"
	}

	return def
}

type CacheConfig struct {
	Mode    string      `mapstructure:"mode"`
	Options interface{} `mapstructure:"options"`
}

type MemoryConfig struct {
}

func cacheConfigHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.Map || t != reflect.TypeOf(&CacheConfig{}) {
			return data, nil
		}

		var cacheConfig CacheConfig
		if err := mapstructure.Decode(data, &cacheConfig); err != nil {
			return nil, err
		}

		switch cacheConfig.Mode {
		case "redis":
			var redisConfig RedisConfig
			if cacheConfig.Options != nil {
				if err := mapstructure.Decode(cacheConfig.Options, &redisConfig); err != nil {
					return nil, err
				}
			}
			for key, value := range redisConfig.Defaults() {
				applyRedisDefault(&redisConfig, key, value)
			}
			cacheConfig.Options = &redisConfig
		case "memory":
			cacheConfig.Options = &MemoryConfig{}
		}

		return &cacheConfig, nil
	}
}

func applyRedisDefault(cfg *RedisConfig, key string, value interface{}) {
	switch key {
	case "address":
		if cfg.Address == "" {
			cfg.Address = value.(string)
		}
	case "db":
		if cfg.DB == 0 {
			cfg.DB = value.(int)
		}
	}
}
