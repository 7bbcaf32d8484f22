// Package config resolves sonarexport settings from defaults, environment
// variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. Flags of the same name override the environment.
const (
	KeyURL           = "url"
	KeyUsername      = "username"
	KeyPassword      = "password"
	KeyProject       = "project"
	KeyOutDir        = "out-dir"
	KeyProbeAttempts = "probe-attempts"
	KeyProbeInterval = "probe-interval"
	KeyProbeTimeout  = "probe-timeout"
)

// envBindings maps each setting to the environment variable it reads.
var envBindings = map[string]string{
	KeyURL:           "SONAR_URL",
	KeyUsername:      "SONAR_USERNAME",
	KeyPassword:      "SONAR_PASSWORD",
	KeyProject:       "PROJECT_KEY",
	KeyOutDir:        "SONAR_EXPORT_DIR",
	KeyProbeAttempts: "SONAR_PROBE_ATTEMPTS",
	KeyProbeInterval: "SONAR_PROBE_INTERVAL",
	KeyProbeTimeout:  "SONAR_PROBE_TIMEOUT",
}

// Defaults.
const (
	DefaultURL           = "http://sonarqube:9000"
	DefaultUsername      = "admin"
	DefaultPassword      = "admin"
	DefaultProject       = "teste"
	DefaultOutDir        = "exports"
	DefaultProbeAttempts = 30
	DefaultProbeInterval = 2 * time.Second
	DefaultProbeTimeout  = 5 * time.Second
)

const maskedPassword = "********"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved settings for one run.
type Config struct {
	URL           string        `json:"url"`
	Username      string        `json:"username"`
	Password      string        `json:"password"`
	ProjectKey    string        `json:"project_key"`
	OutputDir     string        `json:"output_dir"`
	ProbeAttempts int           `json:"probe_attempts"`
	ProbeInterval time.Duration `json:"probe_interval"`
	ProbeTimeout  time.Duration `json:"probe_timeout"`
}

// NewViper returns a viper instance with defaults set and environment
// variables bound.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyURL, DefaultURL)
	v.SetDefault(KeyUsername, DefaultUsername)
	v.SetDefault(KeyPassword, DefaultPassword)
	v.SetDefault(KeyProject, DefaultProject)
	v.SetDefault(KeyOutDir, DefaultOutDir)
	v.SetDefault(KeyProbeAttempts, DefaultProbeAttempts)
	v.SetDefault(KeyProbeInterval, DefaultProbeInterval)
	v.SetDefault(KeyProbeTimeout, DefaultProbeTimeout)

	for key, env := range envBindings {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key, env)
	}
	return v
}

// BindFlags binds every flag in fs whose name is a setting key. Unset flags
// do not shadow the environment.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key := range envBindings {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", key, err)
		}
	}
	return nil
}

// Resolve reads the settings from v and validates them.
func Resolve(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		URL:           strings.TrimRight(strings.TrimSpace(v.GetString(KeyURL)), "/"),
		Username:      v.GetString(KeyUsername),
		Password:      v.GetString(KeyPassword),
		ProjectKey:    strings.TrimSpace(v.GetString(KeyProject)),
		OutputDir:     v.GetString(KeyOutDir),
		ProbeAttempts: v.GetInt(KeyProbeAttempts),
		ProbeInterval: v.GetDuration(KeyProbeInterval),
		ProbeTimeout:  v.GetDuration(KeyProbeTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: server URL is empty", ErrInvalid)
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server URL %q must be an absolute http(s) URL", ErrInvalid, c.URL)
	}
	if c.ProjectKey == "" {
		return fmt.Errorf("%w: project key is empty", ErrInvalid)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalid)
	}
	if c.ProbeAttempts <= 0 {
		return fmt.Errorf("%w: probe attempts must be positive, got %d", ErrInvalid, c.ProbeAttempts)
	}
	if c.ProbeInterval < 0 {
		return fmt.Errorf("%w: probe interval must not be negative, got %s", ErrInvalid, c.ProbeInterval)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("%w: probe timeout must be positive, got %s", ErrInvalid, c.ProbeTimeout)
	}
	return nil
}

// Redacted returns a copy of c that is safe to print.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = maskedPassword
	}
	return c
}
