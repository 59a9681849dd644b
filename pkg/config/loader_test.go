package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Host    string        `yaml:"host" env:"HOST" default:"localhost"`
	Port    int           `yaml:"port" env:"PORT" default:"8080"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" default:"30s"`
	Debug   bool          `yaml:"debug" env:"DEBUG"`
	Origins []string      `yaml:"origins" env:"ORIGINS"`
	SMTP    struct {
		Host string `yaml:"host" env:"HOST"`
		Port int    `yaml:"port" env:"PORT" default:"587"`
	} `yaml:"smtp" env:"SMTP"`
}

func writeConfigFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	var cfg testConfig
	loader := NewLoader("NEILANX")

	require.NoError(t, loader.Load("", &cfg))

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
host: api.neilanx.se
port: 9000
debug: true
origins:
  - https://app.neilanx.se
smtp:
  host: smtp.neilanx.se
`)

	var cfg testConfig
	loader := NewLoader("NEILANX")
	require.NoError(t, loader.Load(path, &cfg))

	assert.Equal(t, "api.neilanx.se", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"https://app.neilanx.se"}, cfg.Origins)
	assert.Equal(t, "smtp.neilanx.se", cfg.SMTP.Host)
	// File value absent, default stands.
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", "port: 9000\n")

	t.Setenv("NEILANX_PORT", "9100")
	t.Setenv("NEILANX_SMTP_HOST", "smtp.example.se")
	t.Setenv("NEILANX_ORIGINS", "https://a.se, https://b.se")
	t.Setenv("NEILANX_TIMEOUT", "45s")

	var cfg testConfig
	loader := NewLoader("NEILANX")
	require.NoError(t, loader.Load(path, &cfg))

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "smtp.example.se", cfg.SMTP.Host)
	assert.Equal(t, []string{"https://a.se", "https://b.se"}, cfg.Origins)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeConfigFile(t, "config.toml", "port = 9000\n")

	var cfg testConfig
	loader := NewLoader("NEILANX")
	err := loader.Load(path, &cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestValidateConfigPath(t *testing.T) {
	assert.NoError(t, ValidateConfigPath(""))

	path := writeConfigFile(t, "config.yaml", "host: x\n")
	assert.NoError(t, ValidateConfigPath(path))

	assert.Error(t, ValidateConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestWriteExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")

	cfg := testConfig{Host: "localhost", Port: 8080}
	loader := NewLoader("NEILANX")
	require.NoError(t, loader.WriteExample(path, &cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "host: localhost")
}
