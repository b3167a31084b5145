package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/pkg/config"
)

type serverConfig struct {
	Addr         string        `env:"TEST_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"TEST_HTTP_READ_TIMEOUT" envDefault:"10s"`
	SecureCookie bool          `env:"TEST_SECURE_COOKIE" envDefault:"false"`
}

type authConfig struct {
	Secret string `env:"TEST_AUTH_SECRET,required"`
}

type ledgerConfig struct {
	DefaultTokens int `env:"TEST_DEFAULT_TOKENS" envDefault:"10"`
}

type envFileConfig struct {
	BaseURL string `env:"TEST_ENV_FILE_BASE_URL"`
}

// Tests in this file share the process environment and the config cache,
// so none of them run in parallel.

func TestLoad_FromEnvironment(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_HTTP_ADDR", ":9000")
	t.Setenv("TEST_HTTP_READ_TIMEOUT", "3s")
	t.Setenv("TEST_SECURE_COOKIE", "true")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.True(t, cfg.SecureCookie)
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg ledgerConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 10, cfg.DefaultTokens)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.ResetCache()
	require.NoError(t, os.Unsetenv("TEST_AUTH_SECRET"))

	var cfg authConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_Malformed(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_DEFAULT_TOKENS", "ten")

	var cfg ledgerConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_DEFAULT_TOKENS", "5")

	var first ledgerConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_DEFAULT_TOKENS", "7")
	var second ledgerConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, 5, second.DefaultTokens)

	config.ResetCache()
	var third ledgerConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, 7, third.DefaultTokens)
}

func TestLoad_Concurrent(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_HTTP_ADDR", ":7000")

	var wg sync.WaitGroup
	results := make([]serverConfig, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = config.Load(&results[i])
		}()
	}
	wg.Wait()

	for _, cfg := range results {
		assert.Equal(t, ":7000", cfg.Addr)
	}
}

func TestLoad_InvalidTarget(t *testing.T) {
	var p *serverConfig
	assert.ErrorIs(t, config.Load(p), config.ErrNilPointer)

	var s string
	assert.ErrorIs(t, config.Load(&s), config.ErrInvalidConfigType)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_ENV_FILE_BASE_URL=https://portal.example\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TEST_ENV_FILE_BASE_URL") })

	require.NoError(t, config.LoadEnv(path))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://portal.example", cfg.BaseURL)

	err := config.LoadEnv(filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(dir, "missing.env")) })
}
