package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, "/bin/sh -c", cfg.Shell)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auto", cfg.Color)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte(`
shell: bash -o pipefail -c
dir: /srv
timeout: 30s
log_level: debug
env:
  STAGE: prod
metrics_addr: ":9100"
`), 0o644))

	cfg, err := Load(fsys, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "bash -o pipefail -c", cfg.Shell)
	assert.Equal(t, "/srv", cfg.Dir)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, map[string]string{"STAGE": "prod"}, cfg.Env)
	assert.Equal(t, ":9100", cfg.MetricsAddr)

	shell := cfg.ShellConfig()
	assert.Equal(t, "bash -o pipefail -c", shell.Shell)
	assert.Equal(t, "/srv", shell.Dir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "custom.yaml", []byte("log_level: warn\n"), 0o644))

	cfg, err := Load(fsys, "custom.yaml", []string{
		"UNSHELL_LOG_LEVEL=error",
		"UNSHELL_TIMEOUT=2m",
		"UNSHELL_ENV_TOKEN=abc",
		"HOME=/root",
	})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, map[string]string{"TOKEN": "abc"}, cfg.Env)
}

func TestLoad_IgnoresUnknownEnv(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "", []string{
		"UNSHELL_HOME=/opt/unshell",
		"UNSHELL_ENV=prod",
		"UNSHELL_ENV_=empty",
		"UNSHELL_COLOR=never",
	})
	require.NoError(t, err)

	assert.Equal(t, "never", cfg.Color)
	assert.Empty(t, cfg.Env)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit missing file", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "missing.yaml", nil)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte("shell: [unterminated\n"), 0o644))
		_, err := Load(fsys, "", nil)
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte("retries: 3\n"), 0o644))
		_, err := Load(fsys, "", nil)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, env := range []string{
			"UNSHELL_LOG_LEVEL=loud",
			"UNSHELL_COLOR=sometimes",
			"UNSHELL_LOG_FORMAT=xml",
			"UNSHELL_SHELL=",
			"UNSHELL_TIMEOUT=-1s",
		} {
			_, err := Load(afero.NewMemMapFs(), "", []string{env})
			assert.Error(t, err, env)
		}
	})
}
