// Package config loads the server configuration from an optional TOML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds everything the server needs at startup.
type Config struct {
	ListenAddr string   `toml:"listen_addr"`
	DataDir    string   `toml:"data_dir"`   // badger directory; empty means in-memory
	UploadDir  string   `toml:"upload_dir"` // served under /images/
	JWTSecret  string   `toml:"jwt_secret"`
	CORSOrigin string   `toml:"cors_origin"`
	TokenTTL   Duration `toml:"token_ttl"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Environment variables that override file values.
const (
	EnvAddr       = "INKWELL_ADDR"
	EnvPort       = "PORT"
	EnvDataDir    = "INKWELL_DATA_DIR"
	EnvUploadDir  = "INKWELL_UPLOAD_DIR"
	EnvJWTSecret  = "JWT_SECRET"
	EnvCORSOrigin = "CORS_ORIGIN"
	EnvTokenTTL   = "INKWELL_TOKEN_TTL"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		DataDir:    filepath.Join("data", "badger"),
		UploadDir:  filepath.Join("Public", "Images"),
		CORSOrigin: "http://localhost:5173",
		TokenTTL:   Duration{24 * time.Hour},
	}
}

// Read decodes a Config from r on top of the defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the file at path, if any, then applies environment
// overrides looked up through getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()
		if cfg, err = Read(f); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		c.ListenAddr = ":" + v
	}
	if v := getenv(EnvAddr); v != "" {
		c.ListenAddr = v
	}
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvUploadDir); v != "" {
		c.UploadDir = v
	}
	if v := getenv(EnvJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := getenv(EnvCORSOrigin); v != "" {
		c.CORSOrigin = v
	}
	if v := getenv(EnvTokenTTL); v != "" {
		if err := c.TokenTTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvTokenTTL, err)
		}
	}
	return nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("jwt_secret is required (set %s)", EnvJWTSecret))
	}
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr is required"))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("upload_dir is required"))
	}
	if c.TokenTTL.Duration <= 0 {
		errs = append(errs, errors.New("token_ttl must be positive"))
	}
	return errors.Join(errs...)
}

// Init writes cfg to a new file at path, refusing to overwrite.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()
	if err := Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
