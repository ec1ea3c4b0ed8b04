package config

import (
	"errors"
	"fmt"
	"log"

	"salestrend/prediction"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Addr        string

	GeminiAPIKey string
	GeminiModel  string

	// DefaultPeriodDays is the trailing window used when a request does
	// not name one; MaxPeriodDays bounds what a request may ask for.
	DefaultPeriodDays int
	MaxPeriodDays     int

	AdminEmail    string
	AdminPassword string

	Prediction prediction.Params
}

// AppConfig holds the application-wide configuration.
// Middleware reads the JWT secret from here.
var AppConfig Config

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom is Load with a caller-supplied viper instance, so command-line
// flags bound to it take precedence over the environment.
func LoadFrom(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	v.AutomaticEnv()
	setDefaults(v)

	defaults := prediction.DefaultParams()
	cfg := Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		Addr:              v.GetString("ADDR"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		DefaultPeriodDays: v.GetInt("PREDICTION_DEFAULT_PERIOD_DAYS"),
		MaxPeriodDays:     v.GetInt("PREDICTION_MAX_PERIOD_DAYS"),
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		Prediction: prediction.Params{
			SmoothingWindow:        v.GetInt("PREDICTION_SMOOTHING_WINDOW"),
			TrendThreshold:         v.GetFloat64("PREDICTION_TREND_THRESHOLD"),
			LowConfidence:          v.GetFloat64("PREDICTION_LOW_CONFIDENCE"),
			HighConfidence:         v.GetFloat64("PREDICTION_HIGH_CONFIDENCE"),
			SeasonalityThreshold:   v.GetFloat64("PREDICTION_SEASONALITY_THRESHOLD"),
			SeasonalityBoost:       defaults.SeasonalityBoost,
			InsufficientConfidence: defaults.InsufficientConfidence,
			ShortSeriesConfidence:  defaults.ShortSeriesConfidence,
		},
	}

	if err := cfg.Prediction.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid prediction settings: %w", err)
	}
	if cfg.DefaultPeriodDays < 1 || cfg.DefaultPeriodDays > cfg.MaxPeriodDays {
		return Config{}, fmt.Errorf("default period %d must lie in [1,%d]", cfg.DefaultPeriodDays, cfg.MaxPeriodDays)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := prediction.DefaultParams()
	v.SetDefault("ADDR", ":3000")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	v.SetDefault("PREDICTION_DEFAULT_PERIOD_DAYS", 30)
	v.SetDefault("PREDICTION_MAX_PERIOD_DAYS", 365)
	v.SetDefault("PREDICTION_SMOOTHING_WINDOW", defaults.SmoothingWindow)
	v.SetDefault("PREDICTION_TREND_THRESHOLD", defaults.TrendThreshold)
	v.SetDefault("PREDICTION_LOW_CONFIDENCE", defaults.LowConfidence)
	v.SetDefault("PREDICTION_HIGH_CONFIDENCE", defaults.HighConfidence)
	v.SetDefault("PREDICTION_SEASONALITY_THRESHOLD", defaults.SeasonalityThreshold)
}

// ValidateServer checks the settings the HTTP server cannot start without.
func (c Config) ValidateServer() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}
