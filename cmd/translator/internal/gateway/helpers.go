package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sahiljaat11/discord-translator-bot/cmd/translator/internal"
	"github.com/sahiljaat11/discord-translator-bot/pkg/bus"
	"github.com/sahiljaat11/discord-translator-bot/pkg/channels"
	"github.com/sahiljaat11/discord-translator-bot/pkg/health"
	"github.com/sahiljaat11/discord-translator-bot/pkg/langdetect"
	"github.com/sahiljaat11/discord-translator-bot/pkg/logger"
	"github.com/sahiljaat11/discord-translator-bot/pkg/meter"
	"github.com/sahiljaat11/discord-translator-bot/pkg/pairs"
	"github.com/sahiljaat11/discord-translator-bot/pkg/providers"
	"github.com/sahiljaat11/discord-translator-bot/pkg/relay"
)

func gatewayCmd(debug bool) error {
	// A .env in the working directory is a convenience for local runs;
	// missing files are fine.
	_ = godotenv.Load()

	if debug {
		logger.SetLevel(logger.DEBUG)
		fmt.Println("🔍 Debug mode enabled")
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	store, err := openStore(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("error opening pair store: %w", err)
	}

	graph := pairs.NewGraph(store)

	usage := meter.NewStore()
	chain := providers.BuildChain(cfg.Providers, langdetect.Detect)
	chain.SetRecorder(usage)
	fmt.Printf("✓ Provider chain: %s\n", strings.Join(chain.Names(), ", "))

	events := bus.NewEventBus()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var engine *relay.Engine
	discord, err := channels.NewDiscordChannel(cfg.Discord, events, graph,
		func() relay.Stats { return engine.Stats() })
	if err != nil {
		graph.Close()
		return fmt.Errorf("error creating discord channel: %w", err)
	}

	engine = relay.New(cfg.Relay, events, graph, chain, discord)
	go engine.Run(ctx)

	if err := discord.Start(ctx); err != nil {
		graph.Close()
		return fmt.Errorf("error starting discord channel: %w", err)
	}

	healthServer := health.NewServer(cfg.Gateway.Host, cfg.Gateway.Port, discord.IsRunning)
	go func() {
		if err := healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorCF("health", "Health server error", map[string]any{"error": err.Error()})
		}
	}()

	fmt.Printf("✓ Gateway started on %s:%d\n", cfg.Gateway.Host, cfg.Gateway.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	events.Close()
	cancel()
	healthServer.Stop(context.Background())
	discord.Stop(context.Background())
	if err := graph.Close(); err != nil {
		logger.ErrorCF("pairs", "Store close failed", map[string]any{"error": err.Error()})
	}

	for _, m := range usage.Snapshot() {
		logger.InfoCF("meter", "Provider usage", map[string]any{
			"provider":   m.Name,
			"calls":      m.Calls,
			"failures":   m.Failures,
			"characters": m.Characters,
		})
	}

	fmt.Println("✓ Gateway stopped")
	return nil
}

func openStore(driver, path string) (pairs.Store, error) {
	switch driver {
	case "sqlite":
		return pairs.NewSQLiteStore(path)
	case "json", "":
		return pairs.NewJSONStore(path), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
