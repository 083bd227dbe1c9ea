package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestReadWriteRoundTrip(t *testing.T) {
	original := &Config{
		ListenAddr: ":9000",
		DataDir:    "/var/lib/inkwell",
		UploadDir:  "/srv/images",
		JWTSecret:  "s3cret",
		CORSOrigin: "https://blog.example.com",
		TokenTTL:   Duration{2 * time.Hour},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, original))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestReadKeepsDefaults(t *testing.T) {
	got, err := Read(strings.NewReader(`jwt_secret = "abc"`))
	require.NoError(t, err)

	assert.Equal(t, "abc", got.JWTSecret)
	assert.Equal(t, Default().ListenAddr, got.ListenAddr)
	assert.Equal(t, 24*time.Hour, got.TokenTTL.Duration)
}

func TestReadRejectsBadDuration(t *testing.T) {
	_, err := Read(strings.NewReader(`token_ttl = "soon"`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr = ":7000"
jwt_secret = "from-file"
cors_origin = "https://file.example.com"
`), 0600))

	t.Run("file only", func(t *testing.T) {
		cfg, err := Load(path, envFrom(nil))
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.ListenAddr)
		assert.Equal(t, "from-file", cfg.JWTSecret)
		assert.Equal(t, "https://file.example.com", cfg.CORSOrigin)
	})

	t.Run("environment wins", func(t *testing.T) {
		cfg, err := Load(path, envFrom(map[string]string{
			EnvPort:       "3001",
			EnvJWTSecret:  "from-env",
			EnvDataDir:    "/tmp/db",
			EnvUploadDir:  "/tmp/up",
			EnvCORSOrigin: "*",
			EnvTokenTTL:   "1h",
		}))
		require.NoError(t, err)
		assert.Equal(t, ":3001", cfg.ListenAddr)
		assert.Equal(t, "from-env", cfg.JWTSecret)
		assert.Equal(t, "/tmp/db", cfg.DataDir)
		assert.Equal(t, "/tmp/up", cfg.UploadDir)
		assert.Equal(t, "*", cfg.CORSOrigin)
		assert.Equal(t, time.Hour, cfg.TokenTTL.Duration)
	})

	t.Run("full address beats port", func(t *testing.T) {
		cfg, err := Load("", envFrom(map[string]string{EnvPort: "3001", EnvAddr: "127.0.0.1:4000"}))
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:4000", cfg.ListenAddr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), envFrom(nil))
		assert.Error(t, err)
	})

	t.Run("bad ttl in environment", func(t *testing.T) {
		_, err := Load("", envFrom(map[string]string{EnvTokenTTL: "forever"}))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults need a secret", func(t *testing.T) {
		err := Default().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret")
	})

	t.Run("reports every problem", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.Validate()
		require.Error(t, err)
		for _, want := range []string{"jwt_secret", "listen_addr", "upload_dir", "token_ttl"} {
			assert.Contains(t, err.Error(), want)
		}
	})

	t.Run("complete config", func(t *testing.T) {
		cfg := Default()
		cfg.JWTSecret = "s3cret"
		assert.NoError(t, cfg.Validate())
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inkwell.toml")
	cfg := Default()
	cfg.JWTSecret = "s3cret"

	require.NoError(t, Init(path, cfg))
	assert.Error(t, Init(path, cfg))

	loaded, err := Load(path, envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
