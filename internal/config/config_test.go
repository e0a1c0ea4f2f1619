package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("ENVSTACK_CONFIG", "")
	t.Setenv("ENVSTACK_DIR", "")
	t.Setenv("ENVSTACK_VERBOSE", "")
	t.Setenv("ENVSTACK_OUTPUT", "")
	return home
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyDir, "", "")
	fs.BoolP(KeyVerbose, "v", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(NewViper(), testFlags())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".envarstacks"), cfg.Dir)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "env", cfg.Output)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := isolate(t)
	cfgDir := filepath.Join(home, "xdg", "envstack")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"),
		[]byte("dir: /from/file\nverbose: true\noutput: yaml\n"), 0644))

	cfg, err := Load(NewViper(), testFlags())
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.Dir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "yaml", cfg.Output)

	t.Setenv("ENVSTACK_DIR", "/from/env")
	cfg, err = Load(NewViper(), testFlags())
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Dir)
}

func TestLoadFlagWins(t *testing.T) {
	isolate(t)
	t.Setenv("ENVSTACK_DIR", "/from/env")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--dir", "~/stacks", "-v"}))
	cfg, err := Load(NewViper(), fs)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "stacks"), cfg.Dir)
	assert.True(t, cfg.Verbose)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	home := isolate(t)
	t.Setenv("ENVSTACK_CONFIG", filepath.Join(home, "missing.yaml"))

	_, err := Load(NewViper(), testFlags())
	assert.Error(t, err)
}
