package config

import (
	"ctchen222/minimax-tictactoe/internal/validator"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFile   string    `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log" validate:"required"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Telemetry struct {
	Exporter       string `yaml:"exporter" env:"OTEL_EXPORTER" env-default:"none" validate:"oneof=none stdout otlp"`
	Endpoint       string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317" validate:"required_if=Exporter otlp"`
	Output         string `yaml:"output" env:"OTEL_OUTPUT" env-default:"telemetry.jsonl" validate:"required_if=Exporter stdout"`
	ServiceName    string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe" validate:"required"`
	ServiceVersion string `yaml:"service-version" env-default:"v0.1.0"`
}

// Load reads the YAML file at path when it exists and the environment otherwise.
// Environment variables override file values in both cases.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	switch _, statErr := os.Stat(path); {
	case statErr == nil:
		err = cleanenv.ReadConfig(path, config)
	case errors.Is(statErr, fs.ErrNotExist):
		err = cleanenv.ReadEnv(config)
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", statErr)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := validator.Check(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// MustLoad - load all configurations, panicking on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}
