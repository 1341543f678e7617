package config

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/quatton/qrender/pkg/kv"
	"github.com/quatton/qrender/pkg/qapi/utils"
)

type EnvConfig struct {
	Host             string `envconfig:"HOST" default:"127.0.0.1"`
	Port             string `envconfig:"PORT" default:"7878"`
	Environment      string `envconfig:"ENVIRONMENT" default:"development"`
	RenderExecutable string `envconfig:"RENDER_EXECUTABLE"` // the only renderer the agent runs
	ValkeyAddr       string `envconfig:"VALKEY_ADDR"`
	ValkeyPassword   string `envconfig:"VALKEY_PASSWORD"`
	ValkeyDB         int    `envconfig:"VALKEY_DB" default:"0"`
	LockTTL          int    `envconfig:"LOCK_TTL" default:"30"` // seconds
}

func ValidateEnv() (*EnvConfig, error) {
	if utils.IsDev() {
		if err := godotenv.Load(); err != nil {
			log.Println("ℹ No .env file found")
		} else {
			log.Println("✓ Loaded .env file")
		}
	}

	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if errs := cfg.validate(); len(errs) > 0 {
		return nil, fmt.Errorf("environment validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return &cfg, nil
}

func (c *EnvConfig) validate() []string {
	var errors []string

	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errors = append(errors, "  ❌ PORT must be a number between 1 and 65535")
	}

	if c.Host == "" || (c.Host != "localhost" && net.ParseIP(c.Host) == nil) {
		errors = append(errors, "  ❌ HOST must be an IP address or localhost")
	}

	if c.RenderExecutable == "" {
		errors = append(errors, "  ❌ RENDER_EXECUTABLE is required")
	}

	if c.LockTTL <= 0 {
		errors = append(errors, "  ❌ LOCK_TTL must be a positive number of seconds")
	}

	if c.ValkeyAddr == "" && c.ValkeyPassword != "" {
		errors = append(errors, "  ❌ VALKEY_PASSWORD is set but VALKEY_ADDR is not")
	}

	return errors
}

// Addr is the listen address. The default host is loopback only.
func (c *EnvConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LockTimeout returns LockTTL as a duration.
func (c *EnvConfig) LockTimeout() time.Duration {
	return time.Duration(c.LockTTL) * time.Second
}

// Valkey returns the lock store connection settings, or false when the
// agent should keep locks in memory.
func (c *EnvConfig) Valkey() (kv.ValkeyConfig, bool) {
	if c.ValkeyAddr == "" {
		return kv.ValkeyConfig{}, false
	}
	return kv.ValkeyConfig{
		Addr:     c.ValkeyAddr,
		Password: c.ValkeyPassword,
		DB:       c.ValkeyDB,
		Prefix:   kv.DefaultValkeyPrefix,
	}, true
}

func MaskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func (c *EnvConfig) Print(fmtr func(string, ...interface{})) {
	fmtr("📋 Configuration:\n")
	fmtr("  Environment: %s\n", c.Environment)
	fmtr("  Listen: %s\n", c.Addr())
	fmtr("  Renderer: %s\n", c.RenderExecutable)

	if c.ValkeyAddr != "" {
		fmtr("  Launch locks: valkey %s/%d (password %s)\n", c.ValkeyAddr, c.ValkeyDB, MaskSecret(c.ValkeyPassword))
	} else {
		fmtr("  Launch locks: in-memory\n")
	}
	fmtr("  Lock TTL: %ds\n", c.LockTTL)
}
