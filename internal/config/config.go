// Package config loads the settings used by the flowdock command.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/adamwoolhether/flowdock/client"
)

// Config holds runtime configuration for the flowdock command.
type Config struct {
	// APIToken authenticates the REST API calls (message, private, api).
	APIToken string `json:"api_token" yaml:"api_token"`

	// FlowToken is used by thread posts, and by inbox/chat when FlowTokens is empty.
	FlowToken  string   `json:"flow_token" yaml:"flow_token"`
	FlowTokens []string `json:"flow_tokens" yaml:"flow_tokens"`

	// Team inbox defaults
	Source      string `json:"source" yaml:"source"`
	Project     string `json:"project" yaml:"project"`
	FromName    string `json:"from_name" yaml:"from_name"`
	FromAddress string `json:"from_address" yaml:"from_address"`
	ReplyTo     string `json:"reply_to" yaml:"reply_to"`

	// Chat default
	ExternalUserName string `json:"external_user_name" yaml:"external_user_name"`

	BaseURL  string        `json:"base_url" yaml:"base_url"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	LogLevel string        `json:"log_level" yaml:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  client.DefaultBaseURL,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// LoadFile loads config from a YAML/JSON file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate returns a list of non-fatal configuration warnings.
func (c *Config) Validate() []string {
	var warnings []string
	checks := []struct {
		cond bool
		msg  string
	}{
		{c.APIToken == "" && c.FlowToken == "" && len(c.FlowTokens) == 0, "no api_token or flow token configured"},
		{c.FromName != "" && c.FromAddress == "", "from_name provided but from_address is missing"},
		{c.Source != "" && !client.ValidLabel(c.Source), "source may only contain letters, numbers, underscores, hyphens and spaces"},
		{c.Project != "" && !client.ValidLabel(c.Project), "project may only contain letters, numbers, underscores, hyphens and spaces"},
		{client.HasWhitespace(c.ExternalUserName), "external_user_name must not contain whitespace"},
		{utf8.RuneCountInString(c.ExternalUserName) > client.MaxExternalUserNameLength,
			fmt.Sprintf("external_user_name is longer than %d characters", client.MaxExternalUserNameLength)},
		{c.Timeout < 0, "timeout must not be negative"},
	}
	for _, ch := range checks {
		if ch.cond {
			warnings = append(warnings, ch.msg)
		}
	}
	if w := validateBaseURL(c.BaseURL); w != "" {
		warnings = append(warnings, w)
	}
	if _, err := c.Level(); err != nil {
		warnings = append(warnings, err.Error())
	}
	return warnings
}

func validateBaseURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("invalid base_url: %q (expected an absolute url)", raw)
	}
	return ""
}

// Level parses LogLevel, defaulting to info when it is empty.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return lvl, nil
}

// Tokens returns the flow tokens for inbox and chat pushes.
func (c *Config) Tokens() []string {
	if len(c.FlowTokens) > 0 {
		return c.FlowTokens
	}
	if c.FlowToken != "" {
		return []string{c.FlowToken}
	}
	return nil
}

// FlowConfig maps the config onto a client.FlowConfig.
func (c *Config) FlowConfig() client.FlowConfig {
	fc := client.FlowConfig{
		Tokens:           c.Tokens(),
		Source:           c.Source,
		Project:          c.Project,
		ReplyTo:          c.ReplyTo,
		ExternalUserName: c.ExternalUserName,
	}
	if c.FromName != "" || c.FromAddress != "" {
		fc.From = &client.Sender{Name: c.FromName, Address: c.FromAddress}
	}
	return fc
}

// ClientConfig maps the config onto a client.ClientConfig.
func (c *Config) ClientConfig() client.ClientConfig {
	return client.ClientConfig{APIToken: c.APIToken, FlowToken: c.FlowToken}
}

// Options returns the client options implied by the config.
func (c *Config) Options(logger *slog.Logger) []client.Option {
	opts := []client.Option{client.WithLogger(logger)}
	if c.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(c.BaseURL))
	}
	if c.Timeout != 0 {
		opts = append(opts, client.WithTimeout(c.Timeout))
	}
	return opts
}
