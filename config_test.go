package enrs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OvermindDL1/enrs"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, "initial_capacity: 4096\nworkers: 2\nlog_level: debug\n")
	cfg, err := enrs.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.InitialCapacity)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "workers: 8\n")
	cfg, err := enrs.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, enrs.DefaultConfig().InitialCapacity, cfg.InitialCapacity)
	assert.Equal(t, 8, cfg.Workers)
	assert.Empty(t, cfg.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := enrs.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "workers: [not a number\n")
	_, err := enrs.LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  enrs.Config
		ok   bool
	}{
		{"defaults", enrs.DefaultConfig(), true},
		{"log level off", enrs.Config{LogLevel: "off"}, true},
		{"log level info", enrs.Config{LogLevel: "info"}, true},
		{"negative capacity", enrs.Config{InitialCapacity: -1}, false},
		{"negative workers", enrs.Config{Workers: -2}, false},
		{"bogus log level", enrs.Config{LogLevel: "shouty"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewRegistryFromConfig(t *testing.T) {
	reg, err := enrs.NewRegistryFromConfig(enrs.Config{InitialCapacity: 16, Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Workers())

	e := reg.Create()
	_, err = enrs.Emplace(reg, e, Position{X: 1})
	require.NoError(t, err)
	assert.NotNil(t, enrs.Get[Position](reg, e))
}

func TestNewRegistryFromConfigRejectsInvalid(t *testing.T) {
	_, err := enrs.NewRegistryFromConfig(enrs.Config{Workers: -1})
	assert.Error(t, err)
}
