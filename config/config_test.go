package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/freekieb7/rin/test"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{EnvServiceName, EnvLogLevel, EnvOTLPInsecure, EnvOTLPEndpoint} {
		unsetEnv(t, key)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	test.AssertNoError(t, err)
	test.AssertEqual(t, DefaultServiceName, cfg.ServiceName)
	test.AssertEqual(t, slog.LevelInfo, cfg.LogLevel)
	test.AssertEqual(t, "", cfg.OTLPEndpoint)
	test.AssertEqual(t, false, cfg.OTLPInsecure)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvServiceName, "edge")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvOTLPEndpoint, "http://collector:4317")
	t.Setenv(EnvOTLPInsecure, "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	test.AssertNoError(t, err)
	test.AssertEqual(t, "edge", cfg.ServiceName)
	test.AssertEqual(t, slog.LevelDebug, cfg.LogLevel)
	test.AssertEqual(t, "http://collector:4317", cfg.OTLPEndpoint)
	test.AssertEqual(t, true, cfg.OTLPInsecure)
}

func TestLoadDotenvFile(t *testing.T) {
	unsetEnv(t, EnvServiceName)
	unsetEnv(t, EnvLogLevel)
	t.Setenv(EnvOTLPInsecure, "false")

	path := filepath.Join(t.TempDir(), ".env")
	content := EnvServiceName + "=from-file\n" +
		EnvLogLevel + "=warn\n" +
		EnvOTLPInsecure + "=true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	test.AssertNoError(t, err)
	test.AssertEqual(t, "from-file", cfg.ServiceName)
	test.AssertEqual(t, slog.LevelWarn, cfg.LogLevel)
	test.AssertEqual(t, false, cfg.OTLPInsecure)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		key, value string
	}{
		{EnvLogLevel, "loud"},
		{EnvOTLPInsecure, "maybe"},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("expected an error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
