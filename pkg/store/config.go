package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names a persistence strategy.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
)

// Viper keys, shared with the command line flags that override them.
const (
	KeyBackend       = "backend"
	KeyPath          = "path"
	KeyRemoteURL     = "remote.url"
	KeyRemoteTimeout = "remote.timeout"
	KeyPersistOrder  = "persist-order"
)

const (
	DefaultPath          = "~/.taskboard.db"
	DefaultRemoteURL     = "http://localhost:8000"
	DefaultRemoteTimeout = 5 * time.Second
)

type Config interface {
	BasePath() string
	Backend() Backend
	RemoteURL() string
	RemoteTimeout() time.Duration
	PersistOrder() bool
}

func LoadConfig() (Config, error) {
	viper.SetDefault(KeyBackend, string(BackendLocal))
	viper.SetDefault(KeyPath, DefaultPath)
	viper.SetDefault(KeyRemoteURL, DefaultRemoteURL)
	viper.SetDefault(KeyRemoteTimeout, DefaultRemoteTimeout)
	viper.SetDefault(KeyPersistOrder, false)
	viper.SetConfigName(".taskboard") // .yaml is implicit
	viper.SetEnvPrefix("TASKBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("TASKBOARD_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString(KeyPath))
	if err != nil {
		return nil, fmt.Errorf("store: expanding path: %w", err)
	}

	cfg := &fileConfig{
		Path:    path,
		Kind:    Backend(strings.ToLower(strings.TrimSpace(viper.GetString(KeyBackend)))),
		URL:     strings.TrimRight(viper.GetString(KeyRemoteURL), "/"),
		Timeout: viper.GetDuration(KeyRemoteTimeout),
		Order:   viper.GetBool(KeyPersistOrder),
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the strategies cannot honour.
func Validate(cfg Config) error {
	switch cfg.Backend() {
	case BackendLocal:
		if cfg.BasePath() == "" {
			return errors.New("store: local backend requires a path")
		}
	case BackendRemote:
		if cfg.RemoteURL() == "" {
			return errors.New("store: remote backend requires remote.url")
		}
		if cfg.PersistOrder() {
			return errors.New("store: persist-order is only supported by the local backend")
		}
	default:
		return fmt.Errorf("store: unknown backend %q (expected local or remote)", cfg.Backend())
	}
	return nil
}

type fileConfig struct {
	Path    string        `json:"path"`
	Kind    Backend       `json:"backend"`
	URL     string        `json:"remoteURL"`
	Timeout time.Duration `json:"remoteTimeout"`
	Order   bool          `json:"persistOrder"`
}

func (f *fileConfig) BasePath() string             { return f.Path }
func (f *fileConfig) Backend() Backend             { return f.Kind }
func (f *fileConfig) RemoteURL() string            { return f.URL }
func (f *fileConfig) RemoteTimeout() time.Duration { return f.Timeout }
func (f *fileConfig) PersistOrder() bool           { return f.Order }
