package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
	Converter ConverterConfig `toml:"converter"`
}

type ServerConfig struct {
	Port           int    `toml:"port" validate:"gt=0,lte=65535"`
	Host           string `toml:"host" validate:"required"`
	MaxUploadBytes int64  `toml:"max_upload_bytes" validate:"gt=0"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// ConverterConfig contains defaults for the conversion pipeline
type ConverterConfig struct {
	DefaultMethod string `toml:"default_method" validate:"oneof=pdfplumber pdfcpu ledongthuc auto"`
	Pretty        bool   `toml:"pretty"`
	OutputDir     string `toml:"output_dir"` // default directory for CLI output files ("" = current directory)
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			Host:           "localhost",
			MaxUploadBytes: 200 * 1024 * 1024, // 200MB upload cap
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Converter: ConverterConfig{
			DefaultMethod: "auto",
			Pretty:        true,
			OutputDir:     "",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files; environment variables override all files.
// CLI flags are applied afterwards via ApplyFlagOverrides (highest priority).
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("VERTO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("VERTO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if maxUpload := os.Getenv("VERTO_SERVER_MAX_UPLOAD_BYTES"); maxUpload != "" {
		if m, err := strconv.ParseInt(maxUpload, 10, 64); err == nil {
			config.Server.MaxUploadBytes = m
		}
	}

	if level := os.Getenv("VERTO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("VERTO_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range splitString(output, ",") {
			trimmed := trimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if method := os.Getenv("VERTO_CONVERTER_DEFAULT_METHOD"); method != "" {
		config.Converter.DefaultMethod = method
	}
	if pretty := os.Getenv("VERTO_CONVERTER_PRETTY"); pretty != "" {
		if p, err := strconv.ParseBool(pretty); err == nil {
			config.Converter.Pretty = p
		}
	}
	if outputDir := os.Getenv("VERTO_CONVERTER_OUTPUT_DIR"); outputDir != "" {
		config.Converter.OutputDir = outputDir
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Helper functions for string manipulation
func splitString(s, sep string) []string {
	result := []string{}
	start := 0
	for i := 0; i < len(s); i++ {
		if i+len(sep) <= len(s) && s[i:i+len(sep)] == sep {
			result = append(result, s[start:i])
			start = i + len(sep)
			i = start - 1
		}
	}
	result = append(result, s[start:])
	return result
}

func trimSpace(s string) string {
	start := 0
	end := len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\n' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}
