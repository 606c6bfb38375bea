package status

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sahiljaat11/discord-translator-bot/cmd/translator/internal"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local configuration status",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return statusCmd()
		},
	}
}

func statusCmd() error {
	path := internal.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("No config found at %s\nRun: translator onboard\n", path)
		return nil
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	fmt.Printf("Config: %s\n\n", path)
	fmt.Printf("Discord token:  %s\n", configured(cfg.Discord.Token != ""))
	fmt.Println("\nProviders:")
	fmt.Printf("  deepl:          %s\n", configured(cfg.Providers.DeepL.APIKey != ""))
	fmt.Printf("  libretranslate: %s\n", configured(cfg.Providers.LibreTranslate.URL != ""))
	fmt.Printf("  openai:         %s\n", configured(cfg.Providers.OpenAI.APIKey != ""))
	fmt.Printf("  anthropic:      %s\n", configured(cfg.Providers.Anthropic.APIKey != ""))
	fmt.Printf("  mymemory:       %s\n", configured(cfg.Providers.MyMemory.Enabled))
	fmt.Printf("\nPair store: %s (%s)\n", cfg.Store.Driver, cfg.Store.Path)
	return nil
}

func configured(ok bool) string {
	if ok {
		return "✓ configured"
	}
	return "✗ not set"
}
