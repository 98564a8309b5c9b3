package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	Detection DetectionConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host        string
	Port            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type AppConfig struct {
	MaxUploadSize  int64
	MaxImagePixels int64
	AllowedFormats []string
}

type DetectionConfig struct {
	Engine string
	// Seed makes the random engine reproducible; 0 uses the shared source.
	Seed int64
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("SERVER_CORS_ORIGINS", []string{"http://localhost:8080"})
	v.SetDefault("APP_MAX_UPLOAD_SIZE", 200*1024*1024) // 200MB
	v.SetDefault("APP_MAX_IMAGE_PIXELS", 50_000_000)
	v.SetDefault("APP_ALLOWED_FORMATS", []string{".jpg", ".jpeg", ".png", ".mp4", ".mov"})
	v.SetDefault("DETECTION_ENGINE", "random")
	v.SetDefault("DETECTION_SEED", 0)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetString("SERVER_PORT"),
			CORSOrigins:     splitList(v.GetStringSlice("SERVER_CORS_ORIGINS")),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		App: AppConfig{
			MaxUploadSize:  v.GetInt64("APP_MAX_UPLOAD_SIZE"),
			MaxImagePixels: v.GetInt64("APP_MAX_IMAGE_PIXELS"),
			AllowedFormats: normalizeFormats(splitList(v.GetStringSlice("APP_ALLOWED_FORMATS"))),
		},
		Detection: DetectionConfig{
			Engine: strings.ToLower(v.GetString("DETECTION_ENGINE")),
			Seed:   v.GetInt64("DETECTION_SEED"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.MaxUploadSize <= 0 {
		return fmt.Errorf("APP_MAX_UPLOAD_SIZE must be positive, got %d", c.App.MaxUploadSize)
	}
	if c.App.MaxImagePixels <= 0 {
		return fmt.Errorf("APP_MAX_IMAGE_PIXELS must be positive, got %d", c.App.MaxImagePixels)
	}
	if len(c.App.AllowedFormats) == 0 {
		return fmt.Errorf("APP_ALLOWED_FORMATS must not be empty")
	}
	if len(c.Server.CORSOrigins) == 0 {
		return fmt.Errorf("SERVER_CORS_ORIGINS must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	return nil
}

// splitList accepts both whitespace and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normalizeFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(f)
		if !strings.HasPrefix(f, ".") {
			f = "." + f
		}
		out = append(out, f)
	}
	return out
}
