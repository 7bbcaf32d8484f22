package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfigEnv unsets every variable Resolve reads so tests don't
// inherit values from the host environment. t.Cleanup restores them.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range envBindings {
		key := key
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyURL, "", "")
	fs.String(KeyProject, "", "")
	fs.String(KeyOutDir, "", "")
	return fs
}

func TestResolve_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Resolve(NewViper())

	require.NoError(t, err)
	assert.Equal(t, "http://sonarqube:9000", cfg.URL)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "admin", cfg.Password)
	assert.Equal(t, "teste", cfg.ProjectKey)
	assert.Equal(t, "exports", cfg.OutputDir)
	assert.Equal(t, 30, cfg.ProbeAttempts)
	assert.Equal(t, 2*time.Second, cfg.ProbeInterval)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
}

func TestResolve_Environment(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SONAR_URL", "https://sonar.example.com/")
	t.Setenv("SONAR_USERNAME", "ci")
	t.Setenv("SONAR_PASSWORD", "s3cret")
	t.Setenv("PROJECT_KEY", "org:app")
	t.Setenv("SONAR_EXPORT_DIR", "/tmp/out")
	t.Setenv("SONAR_PROBE_ATTEMPTS", "3")
	t.Setenv("SONAR_PROBE_INTERVAL", "250ms")
	t.Setenv("SONAR_PROBE_TIMEOUT", "1s")

	cfg, err := Resolve(NewViper())

	require.NoError(t, err)
	assert.Equal(t, "https://sonar.example.com", cfg.URL, "trailing slash trimmed")
	assert.Equal(t, "ci", cfg.Username)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.Equal(t, "org:app", cfg.ProjectKey)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 3, cfg.ProbeAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.ProbeInterval)
	assert.Equal(t, time.Second, cfg.ProbeTimeout)
}

func TestResolve_FlagsOverrideEnvironment(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PROJECT_KEY", "from-env")
	t.Setenv("SONAR_URL", "http://env:9000")

	v := NewViper()
	fs := testFlags()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--project", "from-flag"}))

	cfg, err := Resolve(v)

	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.ProjectKey)
	assert.Equal(t, "http://env:9000", cfg.URL, "unset flag keeps env value")
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"empty url", map[string]string{"SONAR_URL": " "}},
		{"relative url", map[string]string{"SONAR_URL": "sonarqube:9000/api"}},
		{"empty project", map[string]string{"PROJECT_KEY": " "}},
		{"zero attempts", map[string]string{"SONAR_PROBE_ATTEMPTS": "0"}},
		{"garbage attempts", map[string]string{"SONAR_PROBE_ATTEMPTS": "many"}},
		{"zero timeout", map[string]string{"SONAR_PROBE_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Resolve(NewViper())

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Nil(t, cfg)
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Config{Username: "admin", Password: "admin"}

	r := cfg.Redacted()

	assert.Equal(t, "********", r.Password)
	assert.Equal(t, "admin", cfg.Password, "receiver unchanged")
	assert.Equal(t, "", Config{}.Redacted().Password)
}
