package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the console.
type Config struct {
	AppEnv string

	// ProxyBaseURL is the registration proxy root, e.g.
	// "https://proxy.example.com".
	ProxyBaseURL string

	// AttestationURL is the root of the attestation endpoint. Falls
	// back to ProxyBaseURL when unset.
	AttestationURL string

	// External link targets surfaced in the UI. Opaque services,
	// not part of this system's contract.
	CaptchaURL      string
	SourceURL       string
	VerifyPortalURL string

	// Defaults pre-filling the registration form.
	DefaultModel        string
	DefaultSystemPrompt string

	// AttestationTTL is the staleness window for cached attestation
	// queries.
	AttestationTTL time.Duration

	// RequestTimeout bounds each individual proxy call.
	RequestTimeout time.Duration
}

const defaultSystemPrompt = "You are a helpful, privacy-preserving assistant reachable over Signal."

// Load loads configuration from environment variables.
func Load() (*Config, error) {

	// 1. Load .env file into the process environment. Missing file
	// is fine in prod; any other error should surface.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// 2. Explicitly bind viper keys to env var names
	bindings := map[string]string{
		"app.env":               "APP_ENV",
		"proxy.base_url":        "PROXY_BASE_URL",
		"attestation.url":       "ATTESTATION_URL",
		"attestation.ttl":       "ATTESTATION_TTL",
		"links.captcha":         "CAPTCHA_URL",
		"links.source":          "SOURCE_URL",
		"links.verify_portal":   "VERIFY_PORTAL_URL",
		"defaults.model":        "DEFAULT_MODEL",
		"defaults.systemprompt": "DEFAULT_SYSTEM_PROMPT",
		"request.timeout":       "REQUEST_TIMEOUT",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("attestation.ttl", "60s")
	viper.SetDefault("request.timeout", "30s")
	viper.SetDefault("links.captcha", "https://signalcaptchas.org/registration/generate.html")
	viper.SetDefault("links.verify_portal", "https://proof.t16z.com")
	viper.SetDefault("defaults.systemprompt", defaultSystemPrompt)

	// 4. Get values directly from viper
	cfg := Config{
		AppEnv:              viper.GetString("app.env"),
		ProxyBaseURL:        viper.GetString("proxy.base_url"),
		AttestationURL:      viper.GetString("attestation.url"),
		CaptchaURL:          viper.GetString("links.captcha"),
		SourceURL:           viper.GetString("links.source"),
		VerifyPortalURL:     viper.GetString("links.verify_portal"),
		DefaultModel:        viper.GetString("defaults.model"),
		DefaultSystemPrompt: viper.GetString("defaults.systemprompt"),
		AttestationTTL:      viper.GetDuration("attestation.ttl"),
		RequestTimeout:      viper.GetDuration("request.timeout"),
	}

	// 5. Validation
	if cfg.ProxyBaseURL == "" {
		return nil, fmt.Errorf("PROXY_BASE_URL is not set in environment or .env file")
	}
	if _, err := url.ParseRequestURI(cfg.ProxyBaseURL); err != nil {
		return nil, fmt.Errorf("PROXY_BASE_URL is not a valid URL: %w", err)
	}
	if cfg.AttestationURL == "" {
		cfg.AttestationURL = cfg.ProxyBaseURL
	}
	if cfg.AttestationTTL <= 0 {
		return nil, fmt.Errorf("ATTESTATION_TTL must be positive, got %s", cfg.AttestationTTL)
	}

	return &cfg, nil
}
