package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Extraction ExtractionConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ExtractionConfig holds the tunables of the extraction pipeline. It is
// passed explicitly into the services at call time; the pipeline core reads
// no global state.
type ExtractionConfig struct {
	TitleFontSizeThreshold   float64 `mapstructure:"title_font_size_threshold"`
	HeadingFontSizeThreshold float64 `mapstructure:"heading_font_size_threshold"`
	TextLayerCharThreshold   int     `mapstructure:"text_layer_char_threshold"`
	MaxFileSizeMB            int64   `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (e *ExtractionConfig) MaxFileSizeBytes() int64 {
	return e.MaxFileSizeMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PDFWORKER_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PDFWORKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8089)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Extraction defaults
	v.SetDefault("extraction.title_font_size_threshold", 18.0)
	v.SetDefault("extraction.heading_font_size_threshold", 14.0)
	v.SetDefault("extraction.text_layer_char_threshold", 50)
	v.SetDefault("extraction.max_file_size_mb", 100)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.host":                            "PDFWORKER_SERVER_HOST",
		"server.port":                            "PDFWORKER_SERVER_PORT",
		"server.read_timeout":                    "PDFWORKER_SERVER_READ_TIMEOUT",
		"server.write_timeout":                   "PDFWORKER_SERVER_WRITE_TIMEOUT",
		"server.environment":                     "PDFWORKER_SERVER_ENVIRONMENT",
		"extraction.title_font_size_threshold":   "PDFWORKER_EXTRACTION_TITLE_FONT_SIZE_THRESHOLD",
		"extraction.heading_font_size_threshold": "PDFWORKER_EXTRACTION_HEADING_FONT_SIZE_THRESHOLD",
		"extraction.text_layer_char_threshold":   "PDFWORKER_EXTRACTION_TEXT_LAYER_CHAR_THRESHOLD",
		"extraction.max_file_size_mb":            "PDFWORKER_EXTRACTION_MAX_FILE_SIZE_MB",
		"log.level":                              "PDFWORKER_LOG_LEVEL",
		"log.format":                             "PDFWORKER_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Host:         v.GetString("server.host"),
		Port:         v.GetInt("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}

	cfg.Extraction = ExtractionConfig{
		TitleFontSizeThreshold:   v.GetFloat64("extraction.title_font_size_threshold"),
		HeadingFontSizeThreshold: v.GetFloat64("extraction.heading_font_size_threshold"),
		TextLayerCharThreshold:   v.GetInt("extraction.text_layer_char_threshold"),
		MaxFileSizeMB:            v.GetInt64("extraction.max_file_size_mb"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	if cfg.Extraction.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("extraction.max_file_size_mb must be positive, got %d", cfg.Extraction.MaxFileSizeMB)
	}

	return cfg, nil
}
