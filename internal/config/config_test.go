package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("default model = %q, want gemini-2.5-flash", cfg.GeminiModel)
	}
	if cfg.Language != "slv" {
		t.Errorf("default language = %q, want slv", cfg.Language)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("MENU_OCR_LANG", "eng")
	t.Setenv("TESSDATA_PREFIX", "/opt/tessdata")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GeminiAPIKey != "secret" {
		t.Errorf("api key = %q, want secret", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("model = %q, want gemini-2.5-pro", cfg.GeminiModel)
	}
	if cfg.Language != "eng" {
		t.Errorf("language = %q, want eng", cfg.Language)
	}
	if cfg.TessdataPrefix != "/opt/tessdata" {
		t.Errorf("tessdata prefix = %q, want /opt/tessdata", cfg.TessdataPrefix)
	}
}

func TestValidate(t *testing.T) {
	var cfg Config
	missing := cfg.Validate()
	if len(missing) != 1 || missing[0] != "GEMINI_API_KEY" {
		t.Errorf("Validate() = %v, want [GEMINI_API_KEY]", missing)
	}

	cfg.GeminiAPIKey = "set"
	if missing := cfg.Validate(); len(missing) != 0 {
		t.Errorf("Validate() = %v, want empty", missing)
	}
}
