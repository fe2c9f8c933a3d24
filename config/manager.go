package config

import (
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var (
	configFilePaths = []string{
		"/etc/uplink/config.yaml",
		"/etc/uplink/config.yml",
		"$HOME/.uplink/config.yaml",
		"$HOME/.uplink/config.yml",
		"./uplink.yaml",
		"./uplink.yml",
	}
	errConfigFileNotFound = errors.New("config file not found")
)

// Defaults is implemented by config sections that carry default values for
// keys missing from the config file.
type Defaults interface {
	Defaults() map[string]interface{}
}

// Validator is implemented by config sections that check themselves after
// unmarshalling.
type Validator interface {
	Validate() error
}

type Config struct {
	Core CoreConfig `mapstructure:"core"`
}

type Manager interface {
	Init() error
	Config() *Config
	ConfigFile() string
	ConfigDir() string
	SetLogger(logger *zap.Logger)
}

var _ Manager = (*ManagerDefault)(nil)

type ManagerDefault struct {
	config     *koanf.Koanf
	root       *Config
	configFile string
	logger     *zap.Logger
}

func NewManager() (*ManagerDefault, error) {
	k, configFile, err := newConfig()
	if err != nil && !errors.Is(err, errConfigFileNotFound) {
		return nil, err
	}

	return &ManagerDefault{
		config:     k,
		configFile: configFile,
	}, nil
}

// NewManagerFromConfig wraps an already populated Config, bypassing file
// loading. Used by tests and tooling.
func NewManagerFromConfig(cfg *Config) *ManagerDefault {
	return &ManagerDefault{
		config: koanf.New("."),
		root:   cfg,
	}
}

func newConfig() (*koanf.Koanf, string, error) {
	k := koanf.New(".")

	for _, p := range configFilePaths {
		expanded := os.ExpandEnv(p)
		if _, err := os.Stat(expanded); err != nil {
			continue
		}

		if err := k.Load(file.Provider(expanded), yaml.Parser()); err != nil {
			return nil, "", err
		}

		return k, expanded, nil
	}

	return k, "", errConfigFileNotFound
}

func (m *ManagerDefault) Init() error {
	if m.root != nil {
		return m.validate()
	}

	m.root = &Config{}

	m.applyDefaults("core", m.root.Core)
	m.applyDefaults("core.db", m.root.Core.DB)
	m.applyDefaults("core.log", m.root.Core.Log)

	err := m.config.UnmarshalWithConf("", &m.root, koanf.UnmarshalConf{
		Tag: "mapstructure",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				cacheConfigHook(),
				identityConfigHook(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &m.root,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return err
	}

	return m.validate()
}

func (m *ManagerDefault) applyDefaults(prefix string, section any) {
	defaults, ok := section.(Defaults)
	if !ok {
		return
	}

	for key, value := range defaults.Defaults() {
		fullKey := prefix + "." + key
		if !m.config.Exists(fullKey) {
			_ = m.config.Set(fullKey, value)
		}
	}
}

func (m *ManagerDefault) validate() error {
	return m.root.Core.Validate()
}

func (m *ManagerDefault) Config() *Config {
	return m.root
}

func (m *ManagerDefault) ConfigFile() string {
	return m.configFile
}

func (m *ManagerDefault) ConfigDir() string {
	if m.configFile == "" {
		return path.Dir(os.ExpandEnv(configFilePaths[0]))
	}

	return filepath.Dir(m.configFile)
}

func (m *ManagerDefault) SetLogger(logger *zap.Logger) {
	m.logger = logger
}
