// Package config loads environment-driven settings for the extraction
// pipeline.
package config

import (
	"github.com/spf13/viper"
)

// Config holds all settings the pipeline consumes from the environment.
type Config struct {
	// GeminiAPIKey authenticates against the Gemini API. Required for the
	// structuring stage.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// GeminiModel is the model identifier for menu extraction.
	GeminiModel string `mapstructure:"gemini_model"`

	// GeminiBaseURL overrides the API endpoint.
	GeminiBaseURL string `mapstructure:"gemini_base_url"`

	// TessdataPrefix overrides where Tesseract loads language data from.
	TessdataPrefix string `mapstructure:"tessdata_prefix"`

	// Language is the default OCR language code.
	Language string `mapstructure:"menu_ocr_lang"`

	// LogLevel is the slog level name: debug, info, warn, error.
	LogLevel string `mapstructure:"menu_log_level"`
}

// Load reads configuration from environment variables, applying defaults
// for everything but the credential. It never fails on missing values;
// required settings are reported by Validate so the caller controls the
// error surface.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("menu_ocr_lang", "slv")
	v.SetDefault("menu_log_level", "info")
	v.AutomaticEnv()

	// AutomaticEnv alone does not register keys for Unmarshal; bind each
	// one explicitly.
	for _, key := range []string{
		"gemini_api_key",
		"gemini_model",
		"gemini_base_url",
		"tessdata_prefix",
		"menu_ocr_lang",
		"menu_log_level",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns the names of required environment variables that are
// not set. Empty means the configuration is complete.
func (c Config) Validate() []string {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	return missing
}
