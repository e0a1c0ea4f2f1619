// Package config resolves envstack's runtime settings from flags, ENVSTACK_*
// environment variables and an optional config file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "ENVSTACK"
	KeyDir         = "dir"
	KeyVerbose     = "verbose"
	KeyOutput      = "output"
	defaultDirName = ".envarstacks"
)

// Config is passed explicitly to every command; there is no global state.
type Config struct {
	Dir     string
	Verbose bool
	Output  string
}

// DefaultDir is ~/.envarstacks.
func DefaultDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// NewViper returns a viper instance wired to ENVSTACK_* variables and the
// config file search path.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(KeyOutput, "env")
	if explicit := os.Getenv(EnvPrefix + "_CONFIG"); explicit != "" {
		v.SetConfigFile(explicit)
		return v
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range searchDirs() {
		v.AddConfigPath(dir)
	}
	return v
}

// Load binds fs to v, reads the config file if one exists and returns the
// resolved Config. A missing config file is only an error when it was named
// explicitly through ENVSTACK_CONFIG.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, err
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Dir:     strings.TrimSpace(v.GetString(KeyDir)),
		Verbose: v.GetBool(KeyVerbose),
		Output:  v.GetString(KeyOutput),
	}
	if cfg.Dir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Dir = dir
	}
	dir, err := homedir.Expand(cfg.Dir)
	if err != nil {
		return Config{}, fmt.Errorf("expand dir %q: %w", cfg.Dir, err)
	}
	cfg.Dir = filepath.Clean(dir)
	return cfg, nil
}

func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "envstack"))
	}
	if home, err := homedir.Dir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "envstack"))
	}
	return dirs
}
