package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultRESTPort     = 8088
	defaultMaxBatchSize = 1024
	defaultServiceName  = "vector1"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	RESTPort     int `yaml:"rest_port"`
	MaxBatchSize int `yaml:"max_batch_size"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	FileOutput bool   `yaml:"file_output"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			MaxBatchSize: defaultMaxBatchSize,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Dir:        "logs",
			FileOutput: true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: defaultServiceName,
		},
	}
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "VEC1_REST_PORT", defaultRESTPort)
}

// GetMaxBatchSize возвращает ограничение на размер batch-запроса
func (s *ServerConfig) GetMaxBatchSize() int {
	if s.MaxBatchSize > 0 {
		return s.MaxBatchSize
	}
	return defaultMaxBatchSize
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV VEC1_CONFIG; если и он не задан,
// возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VEC1_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = defaultServiceName
	}
	return cfg, nil
}
