// Package config loads and persists bot configuration from a JSON file
// with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// FlexibleStringSlice is a []string that also accepts JSON numbers,
// so channel id lists can contain both "123" and 123.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try []string first
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}

	// Try []interface{} to handle mixed types
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		case float64:
			result = append(result, fmt.Sprintf("%.0f", val))
		default:
			result = append(result, fmt.Sprintf("%v", val))
		}
	}
	*f = result
	return nil
}

type Config struct {
	Discord   DiscordConfig   `json:"discord"`
	Providers ProvidersConfig `json:"providers"`
	Relay     RelayConfig     `json:"relay"`
	Store     StoreConfig     `json:"store"`
	Gateway   GatewayConfig   `json:"gateway"`
}

type DiscordConfig struct {
	Token string `env:"TRANSLATOR_DISCORD_TOKEN" json:"token"`
}

type ProvidersConfig struct {
	DeepL          DeepLConfig          `json:"deepl"`
	LibreTranslate LibreTranslateConfig `json:"libretranslate"`
	OpenAI         LLMProviderConfig    `json:"openai"`
	Anthropic      LLMProviderConfig    `json:"anthropic"`
	MyMemory       MyMemoryConfig       `json:"mymemory"`
}

// DeepLConfig configures the DeepL REST adapter. Languages overrides the
// built-in supported-target set; priority tiers are configuration, not code.
type DeepLConfig struct {
	APIKey    string   `env:"TRANSLATOR_PROVIDERS_DEEPL_API_KEY"  json:"api_key"`
	APIBase   string   `env:"TRANSLATOR_PROVIDERS_DEEPL_API_BASE" json:"api_base,omitempty"`
	Priority  int      `env:"TRANSLATOR_PROVIDERS_DEEPL_PRIORITY" json:"priority"`
	Languages []string `json:"languages,omitempty"`
}

type LibreTranslateConfig struct {
	URL       string   `env:"TRANSLATOR_PROVIDERS_LIBRETRANSLATE_URL"      json:"url"`
	APIKey    string   `env:"TRANSLATOR_PROVIDERS_LIBRETRANSLATE_API_KEY"  json:"api_key,omitempty"`
	Priority  int      `env:"TRANSLATOR_PROVIDERS_LIBRETRANSLATE_PRIORITY" json:"priority"`
	Languages []string `json:"languages,omitempty"`
}

type LLMProviderConfig struct {
	APIKey   string `json:"api_key"`
	APIBase  string `json:"api_base,omitempty"`
	Model    string `json:"model,omitempty"`
	Priority int    `json:"priority"`
}

// MyMemoryConfig configures the keyless MyMemory adapter. Email raises the
// free daily quota when set.
type MyMemoryConfig struct {
	Enabled  bool   `env:"TRANSLATOR_PROVIDERS_MYMEMORY_ENABLED"  json:"enabled"`
	Email    string `env:"TRANSLATOR_PROVIDERS_MYMEMORY_EMAIL"    json:"email,omitempty"`
	Priority int    `env:"TRANSLATOR_PROVIDERS_MYMEMORY_PRIORITY" json:"priority"`
}

type RelayConfig struct {
	CooldownSeconds          int                 `env:"TRANSLATOR_RELAY_COOLDOWN_SECONDS"        json:"cooldown_seconds"`
	BurstMax                 int                 `env:"TRANSLATOR_RELAY_BURST_MAX"               json:"burst_max"`
	BurstWindowSeconds       int                 `env:"TRANSLATOR_RELAY_BURST_WINDOW_SECONDS"    json:"burst_window_seconds"`
	CacheTTLSeconds          int                 `env:"TRANSLATOR_RELAY_CACHE_TTL_SECONDS"       json:"cache_ttl_seconds"`
	CacheSizeThreshold       int                 `env:"TRANSLATOR_RELAY_CACHE_SIZE_THRESHOLD"    json:"cache_size_threshold"`
	GuardTTLSeconds          int                 `env:"TRANSLATOR_RELAY_GUARD_TTL_SECONDS"       json:"guard_ttl_seconds"`
	PairGuardTTLSeconds      int                 `env:"TRANSLATOR_RELAY_PAIR_GUARD_TTL_SECONDS"  json:"pair_guard_ttl_seconds"`
	CallTimeoutSeconds       int                 `env:"TRANSLATOR_RELAY_CALL_TIMEOUT_SECONDS"    json:"call_timeout_seconds"`
	ReactionDisabledChannels FlexibleStringSlice `env:"TRANSLATOR_RELAY_REACTION_DISABLED"       json:"reaction_disabled_channels,omitempty"`
}

type StoreConfig struct {
	Driver string `env:"TRANSLATOR_STORE_DRIVER" json:"driver"` // "json" or "sqlite"
	Path   string `env:"TRANSLATOR_STORE_PATH"   json:"path"`
}

type GatewayConfig struct {
	Host string `env:"TRANSLATOR_GATEWAY_HOST" json:"host"`
	Port int    `env:"TRANSLATOR_GATEWAY_PORT" json:"port"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".translator")

	return &Config{
		Providers: ProvidersConfig{
			DeepL:          DeepLConfig{Priority: 10},
			LibreTranslate: LibreTranslateConfig{Priority: 20},
			OpenAI:         LLMProviderConfig{Priority: 30, Model: "gpt-4o-mini"},
			Anthropic:      LLMProviderConfig{Priority: 40, Model: "claude-haiku-4-5"},
			MyMemory:       MyMemoryConfig{Enabled: true, Priority: 50},
		},
		Relay: RelayConfig{
			CooldownSeconds:     3,
			BurstMax:            5,
			BurstWindowSeconds:  60,
			CacheTTLSeconds:     600,
			CacheSizeThreshold:  500,
			GuardTTLSeconds:     30,
			PairGuardTTLSeconds: 300,
			CallTimeoutSeconds:  8,
		},
		Store: StoreConfig{
			Driver: "json",
			Path:   filepath.Join(dataDir, "pairs.json"),
		},
		Gateway: GatewayConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No file yet: defaults plus env overrides.
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
