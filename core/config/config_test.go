package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spakit/core/config"
)

type defaultsConfig struct {
	Name    string        `env:"SPAKIT_TEST_NAME" envDefault:"spakit"`
	Timeout time.Duration `env:"SPAKIT_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	URL string `env:"SPAKIT_TEST_REQUIRED_URL,required"`
}

type cachedConfig struct {
	Value string `env:"SPAKIT_TEST_CACHED"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "spakit", cfg.Name)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParse)
	assert.Panics(t, func() { config.MustLoad(&requiredConfig{}) })
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("SPAKIT_TEST_CACHED", "first")

	var a cachedConfig
	require.NoError(t, config.Load(&a))
	assert.Equal(t, "first", a.Value)

	t.Setenv("SPAKIT_TEST_CACHED", "second")

	var b cachedConfig
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value)
}
