package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljip/rt07/pkg/config"
)

type testConfig struct {
	BaseURL string        `env:"TEST_BASE_URL" envDefault:"https://example.com/api"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"15s"`
	Debug   bool          `env:"TEST_DEBUG" envDefault:"false"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "https://example.com/api", cfg.BaseURL)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
		assert.False(t, cfg.Debug)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("TEST_BASE_URL", "https://override.test")
		t.Setenv("TEST_DEBUG", "true")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "https://override.test", cfg.BaseURL)
		assert.True(t, cfg.Debug)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("must load panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}
