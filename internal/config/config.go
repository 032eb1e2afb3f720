// Package config loads and validates all configuration for the h2oGPTe
// action from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/h2oai/h2ogpte-action/internal/slashcmd"
)

// Config holds all configuration for a relay run.
type Config struct {
	// h2oGPTe settings
	H2oGPTeURL    string
	H2oGPTeAPIKey string
	AgentMaxTurns int
	AgentAccuracy string
	AgentTimeout  time.Duration

	// Agent provisioning
	AgentTools   []string          // allowed tool names passed to the session
	AgentSecrets map[string]string // keystore entries, from AGENT_SECRET_* vars

	// Transcript settings
	TurnDelimiter string

	// Slash commands, validated once here so the pipeline receives a typed,
	// already-checked value instead of re-parsing per call.
	SlashCommands []slashcmd.Command

	// GitHub settings (action mode)
	GitHubToken string
}

// ServerConfig extends Config with the settings the webhook-server mode
// needs on top of a plain action run.
type ServerConfig struct {
	Config

	Port                int
	GitHubAppID         string
	GitHubPrivateKey    string
	GitHubWebhookSecret string
	TriggerKeyword      string
}

// Load reads the action-mode configuration from environment variables and
// validates required fields.
func Load() (*Config, error) {
	commands, err := slashcmd.Parse(os.Getenv("SLASH_COMMANDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid SLASH_COMMANDS: %w", err)
	}

	cfg := &Config{
		H2oGPTeURL:    strings.TrimSuffix(os.Getenv("H2OGPTE_URL"), "/"),
		H2oGPTeAPIKey: os.Getenv("H2OGPTE_API_KEY"),
		AgentMaxTurns: getEnvInt("AGENT_MAX_TURNS", 10),
		AgentAccuracy: getEnv("AGENT_ACCURACY", "standard"),
		AgentTimeout:  time.Duration(getEnvInt("AGENT_TIMEOUT_SECONDS", 3600)) * time.Second,
		AgentTools:    splitList(os.Getenv("AGENT_TOOLS")),
		AgentSecrets:  collectSecrets(os.Environ()),
		TurnDelimiter: getEnv("TURN_DELIMITER", "ENDOFTURN"),
		SlashCommands: commands,
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadServer reads the webhook-server configuration: everything Load reads
// plus GitHub App credentials and the HTTP listener settings.
func LoadServer() (*ServerConfig, error) {
	base, err := Load()
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Config:              *base,
		Port:                getEnvInt("PORT", 8000),
		GitHubAppID:         os.Getenv("GITHUB_APP_ID"),
		GitHubPrivateKey:    normalizePrivateKey(os.Getenv("GITHUB_PRIVATE_KEY")),
		GitHubWebhookSecret: os.Getenv("GITHUB_WEBHOOK_SECRET"),
		TriggerKeyword:      getEnv("TRIGGER_KEYWORD", "@h2ogpte"),
	}

	if cfg.GitHubAppID == "" {
		return nil, fmt.Errorf("GITHUB_APP_ID is required")
	}
	if cfg.GitHubPrivateKey == "" {
		return nil, fmt.Errorf("GITHUB_PRIVATE_KEY is required")
	}
	if cfg.GitHubWebhookSecret == "" {
		return nil, fmt.Errorf("GITHUB_WEBHOOK_SECRET is required")
	}
	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	if c.H2oGPTeURL == "" {
		return fmt.Errorf("H2OGPTE_URL is required")
	}
	if c.H2oGPTeAPIKey == "" {
		return fmt.Errorf("H2OGPTE_API_KEY is required")
	}
	if c.AgentMaxTurns <= 0 {
		return fmt.Errorf("AGENT_MAX_TURNS must be greater than 0")
	}
	switch c.AgentAccuracy {
	case "quick", "basic", "standard", "maximum":
	default:
		return fmt.Errorf("invalid AGENT_ACCURACY: %s (must be quick, basic, standard or maximum)", c.AgentAccuracy)
	}
	if c.TurnDelimiter == "" {
		return fmt.Errorf("TURN_DELIMITER must not be empty")
	}
	return nil
}

// normalizePrivateKey undoes the quoting and escaped newlines that PEM keys
// pick up when stuffed into a single env var.
func normalizePrivateKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	for _, quote := range []string{"\"", "'"} {
		if strings.HasPrefix(trimmed, quote) && strings.HasSuffix(trimmed, quote) {
			trimmed = strings.TrimPrefix(trimmed, quote)
			trimmed = strings.TrimSuffix(trimmed, quote)
		}
	}

	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")
	trimmed = strings.ReplaceAll(trimmed, "\r", "\n")
	if strings.Contains(trimmed, "\\n") {
		trimmed = strings.ReplaceAll(trimmed, "\\r", "")
		trimmed = strings.ReplaceAll(trimmed, "\\n", "\n")
	}

	return trimmed
}

// collectSecrets gathers AGENT_SECRET_<NAME>=value pairs into a keystore map
// keyed by the lowercased <NAME> part.
func collectSecrets(environ []string) map[string]string {
	const prefix = "AGENT_SECRET_"
	secrets := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, prefix))
		if name != "" && value != "" {
			secrets[name] = value
		}
	}
	return secrets
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv gets environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
