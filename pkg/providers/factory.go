package providers

import (
	"github.com/sahiljaat11/discord-translator-bot/pkg/config"
	anthropicprovider "github.com/sahiljaat11/discord-translator-bot/pkg/providers/anthropic"
	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/deepl"
	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/libretranslate"
	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/mymemory"
	openaiprovider "github.com/sahiljaat11/discord-translator-bot/pkg/providers/openai"
)

// BuildChain assembles the provider chain from configuration. Ordering is
// entirely configuration-driven: priorities are quality tiers tuned by the
// operator, not hard-coded language partitioning. Unconfigured providers
// are registered anyway; the chain skips them silently at call time, which
// keeps startup independent of which credentials happen to be present.
func BuildChain(cfg config.ProvidersConfig, detect DetectFunc) *Chain {
	c := NewChain(detect)

	c.Add(deepl.New(cfg.DeepL.APIKey, cfg.DeepL.APIBase, cfg.DeepL.Languages), cfg.DeepL.Priority)
	c.Add(libretranslate.New(cfg.LibreTranslate.URL, cfg.LibreTranslate.APIKey,
		cfg.LibreTranslate.Languages), cfg.LibreTranslate.Priority)
	c.Add(openaiprovider.New(cfg.OpenAI.APIKey, cfg.OpenAI.APIBase, cfg.OpenAI.Model),
		cfg.OpenAI.Priority)
	c.Add(anthropicprovider.New(cfg.Anthropic.APIKey, cfg.Anthropic.APIBase, cfg.Anthropic.Model),
		cfg.Anthropic.Priority)
	c.Add(mymemory.New(cfg.MyMemory.Enabled, cfg.MyMemory.Email), cfg.MyMemory.Priority)

	return c
}
