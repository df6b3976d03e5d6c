package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultServiceName = "rin"

	EnvServiceName  = "RIN_SERVICE_NAME"
	EnvLogLevel     = "RIN_LOG_LEVEL"
	EnvOTLPInsecure = "RIN_OTLP_INSECURE"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

type Config struct {
	ServiceName string
	LogLevel    slog.Level

	// OTLPEndpoint enables the OTLP exporters when set. The exporters read
	// it from the environment themselves.
	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads the given dotenv files (".env" when none are given) into the
// process environment, then builds a Config from it. Missing files are
// ignored and variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load dotenv: %w", err)
	}

	cfg := Config{
		ServiceName:  DefaultServiceName,
		LogLevel:     slog.LevelInfo,
		OTLPEndpoint: os.Getenv(EnvOTLPEndpoint),
	}

	if v := os.Getenv(EnvServiceName); v != "" {
		cfg.ServiceName = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
	}

	if v := os.Getenv(EnvOTLPInsecure); v != "" {
		insecure, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvOTLPInsecure, err)
		}
		cfg.OTLPInsecure = insecure
	}

	return cfg, nil
}
