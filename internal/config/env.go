package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ApplyEnvOverrides reads configuration values from environment variables and
// overrides fields in the provided Config. Returns an error if parsing fails.
//
// Environment variables supported:
// - FLOWDOCK_API_TOKEN (string)
// - FLOWDOCK_FLOW_TOKEN (string)
// - FLOWDOCK_FLOW_TOKENS (comma separated, e.g. "tok1,tok2")
// - FLOWDOCK_SOURCE, FLOWDOCK_PROJECT (string)
// - FLOWDOCK_FROM_NAME, FLOWDOCK_FROM_ADDRESS, FLOWDOCK_REPLY_TO (string)
// - FLOWDOCK_EXTERNAL_USER_NAME (string)
// - FLOWDOCK_BASE_URL (string, e.g. https://api.flowdock.com/v1)
// - FLOWDOCK_TIMEOUT (duration, e.g. "30s")
// - FLOWDOCK_LOG_LEVEL (string, e.g. "debug")
func ApplyEnvOverrides(cfg *Config) error {
	applyCredentialEnv(cfg)
	applyDefaultsEnv(cfg)

	if err := applyRuntimeEnv(cfg); err != nil {
		return err
	}

	return nil
}

func applyCredentialEnv(cfg *Config) {
	if v := os.Getenv("FLOWDOCK_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("FLOWDOCK_FLOW_TOKEN"); v != "" {
		cfg.FlowToken = v
	}
	if v := os.Getenv("FLOWDOCK_FLOW_TOKENS"); v != "" {
		cfg.FlowTokens = splitList(v)
	}
}

func applyDefaultsEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("FLOWDOCK_SOURCE", &cfg.Source)
	setString("FLOWDOCK_PROJECT", &cfg.Project)
	setString("FLOWDOCK_FROM_NAME", &cfg.FromName)
	setString("FLOWDOCK_FROM_ADDRESS", &cfg.FromAddress)
	setString("FLOWDOCK_REPLY_TO", &cfg.ReplyTo)
	setString("FLOWDOCK_EXTERNAL_USER_NAME", &cfg.ExternalUserName)
}

func applyRuntimeEnv(cfg *Config) error {
	if v := os.Getenv("FLOWDOCK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FLOWDOCK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FLOWDOCK_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("FLOWDOCK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// splitList splits a comma separated value, dropping empty items.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
