// Package config loads fnr's layered configuration: embedded defaults,
// then the user's config file, then FNR_-prefixed environment
// variables. CLI flags override all of it at the command layer.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
)

//go:embed fnr.toml
var defaultConfig []byte

// Walk holds traversal defaults.
type Walk struct {
	Recursive bool `koanf:"recursive"`
	Hidden    bool `koanf:"hidden"`
	Symlinks  bool `koanf:"symlinks"`
	Gitignore bool `koanf:"gitignore"`
}

// Match holds matching defaults.
type Match struct {
	CaseSensitive bool `koanf:"casesensitive"`
	Regex         bool `koanf:"regex"`
}

// UI holds output defaults.
type UI struct {
	Color bool `koanf:"color"`
}

// Config is the resolved configuration for one run.
type Config struct {
	Walk  Walk  `koanf:"walk"`
	Match Match `koanf:"match"`
	UI    UI    `koanf:"ui"`
}

// rawBytesProvider feeds embedded bytes to koanf.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}

// Load resolves the configuration: embedded defaults, then
// $XDG_CONFIG_HOME/fnr/fnr.toml if present, then FNR_* env vars
// (FNR_WALK_HIDDEN=true maps to walk.hidden).
func Load() (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}

	userPath := filepath.Join(xdg.ConfigHome, "fnr", "fnr.toml")
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load config from %s", userPath)
		}
		logger.Debug().Str("path", userPath).Msg("Loaded user config")
	}

	if err := k.Load(env.Provider("FNR_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "FNR_")), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}
