package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/domain"
)

// Settings are the process level options read from the environment
type Settings struct {
	Locale       domain.Locale
	LogLevel     string
	Format       string
	Addr         string
	Target       float64
	MaxMonths    int
	OTLPEndpoint string
	ServiceName  string
}

// LoadSettings loads .env when present and reads FMGO_* variables. Existing
// process environment variables are not overridden by the file.
func LoadSettings() (*Settings, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	locale, err := domain.ParseLocale(getEnvString("FMGO_LOCALE", string(domain.DefaultLocale)))
	if err != nil {
		return nil, fmt.Errorf("FMGO_LOCALE: %w", err)
	}

	s := &Settings{
		Locale:       locale,
		LogLevel:     getEnvString("FMGO_LOG_LEVEL", "info"),
		Format:       getEnvString("FMGO_FORMAT", "console"),
		Addr:         getEnvString("FMGO_ADDR", ":8080"),
		Target:       getEnvFloat("FMGO_TARGET", calculation.DefaultTarget),
		MaxMonths:    getEnvInt("FMGO_MAX_MONTHS", calculation.DefaultMaxMonths),
		OTLPEndpoint: getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnvString("OTEL_SERVICE_NAME", "fmgo"),
	}
	if !(s.Target > 0) {
		return nil, fmt.Errorf("FMGO_TARGET must be positive, got %v", s.Target)
	}
	if s.MaxMonths <= 0 {
		return nil, fmt.Errorf("FMGO_MAX_MONTHS must be positive, got %d", s.MaxMonths)
	}
	return s, nil
}

// EngineConfig returns the engine configuration these settings describe
func (s *Settings) EngineConfig() calculation.EngineConfig {
	return calculation.EngineConfig{
		Target:    s.Target,
		MaxMonths: s.MaxMonths,
		Locale:    s.Locale,
	}
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
