package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sahiljaat11/discord-translator-bot/cmd/translator/internal"
	"github.com/sahiljaat11/discord-translator-bot/cmd/translator/internal/gateway"
	"github.com/sahiljaat11/discord-translator-bot/cmd/translator/internal/onboard"
	"github.com/sahiljaat11/discord-translator-bot/cmd/translator/internal/status"
	"github.com/sahiljaat11/discord-translator-bot/cmd/translator/internal/version"
)

func NewTranslatorCommand() *cobra.Command {
	short := fmt.Sprintf("%s translator - Discord translation relay v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "translator",
		Short:   short,
		Example: "translator gateway",
	}

	cmd.AddCommand(
		onboard.NewOnboardCommand(),
		gateway.NewGatewayCommand(),
		status.NewStatusCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewTranslatorCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
