package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	v.Set("data.prefix", "/data/RJTTF748")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "", cfg.Audit.DSN)
}

func TestLoadMissingPrefixFails(t *testing.T) {
	v := viper.New()
	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RAILPLAN_DATA_PREFIX", "/env/RJTTF748")
	t.Setenv("RAILPLAN_SERVER_PORT", "9090")

	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/env/RJTTF748", cfg.Data.Prefix)
	assert.Equal(t, 9090, cfg.Server.Port)
}
