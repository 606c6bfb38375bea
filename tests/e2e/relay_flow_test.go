package e2e

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/sahiljaat11/discord-translator-bot/pkg/bus"
	"github.com/sahiljaat11/discord-translator-bot/pkg/config"
	"github.com/sahiljaat11/discord-translator-bot/pkg/langdetect"
	"github.com/sahiljaat11/discord-translator-bot/pkg/pairs"
	"github.com/sahiljaat11/discord-translator-bot/pkg/providers"
	"github.com/sahiljaat11/discord-translator-bot/pkg/relay"
)

// stubProvider is a deterministic translation backend for end-to-end runs.
type stubProvider struct{}

func (stubProvider) Name() string         { return "stub" }
func (stubProvider) Configured() bool     { return true }
func (stubProvider) Supports(string) bool { return true }
func (stubProvider) NativeDetect() bool   { return true }

func (stubProvider) Translate(_ context.Context, text, _, target string) (string, error) {
	return "[" + target + "] " + text, nil
}

type capturePlatform struct {
	mu     sync.Mutex
	sent   []relay.Outgoing
	nextID int
}

func (p *capturePlatform) Send(_ context.Context, out relay.Outgoing) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, out)
	p.nextID++
	return "sent-" + strconv.Itoa(p.nextID), nil
}

func (p *capturePlatform) CheckChannel(context.Context, string) error { return nil }

func (p *capturePlatform) FetchMessage(context.Context, string, string) (relay.FetchedMessage, error) {
	return relay.FetchedMessage{}, nil
}

func (p *capturePlatform) snapshot() []relay.Outgoing {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]relay.Outgoing, len(p.sent))
	copy(out, p.sent)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

// TestRelayFlow drives a message through the full pipeline: bus, engine,
// pair graph with a real JSON store, a real provider chain, and a capture
// platform. A bidirectional pair must relay the original exactly once and
// never re-translate the relay's own output.
func TestRelayFlow(t *testing.T) {
	store := pairs.NewJSONStore(filepath.Join(t.TempDir(), "pairs.json"))
	graph := pairs.NewGraph(store)
	defer graph.Close()

	if _, err := graph.AddPair(pairs.Pair{
		GuildID: "g1", SourceChannel: "chan-a", TargetChannel: "chan-b",
		SourceLang: "en", TargetLang: "es",
	}); err != nil {
		t.Fatalf("add pair a->b: %v", err)
	}
	if _, err := graph.AddPair(pairs.Pair{
		GuildID: "g1", SourceChannel: "chan-b", TargetChannel: "chan-a",
		SourceLang: "es", TargetLang: "en",
	}); err != nil {
		t.Fatalf("add pair b->a: %v", err)
	}

	chain := providers.NewChain(langdetect.Detect)
	chain.Add(stubProvider{}, 10)

	platform := &capturePlatform{}
	events := bus.NewEventBus()
	defer events.Close()

	cfg := config.DefaultConfig().Relay
	engine := relay.New(cfg, events, graph, chain, platform)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Run(ctx)

	err := events.PublishInbound(ctx, bus.InboundMessage{
		GuildID: "g1", ChannelID: "chan-a", MessageID: "m1",
		SenderID: "user-1", SenderName: "alice", Content: "hello",
	})
	if err != nil {
		t.Fatalf("publish inbound: %v", err)
	}

	waitFor(t, func() bool { return len(platform.snapshot()) == 1 })

	sent := platform.snapshot()[0]
	if sent.TargetChannel != "chan-b" {
		t.Errorf("expected relay into chan-b, got %q", sent.TargetChannel)
	}
	if sent.Translated != "[es] hello" {
		t.Errorf("unexpected translation %q", sent.Translated)
	}
	if sent.Provider != "stub" {
		t.Errorf("unexpected provider %q", sent.Provider)
	}

	// The relayed message comes back through the gateway as a fresh event
	// on the reverse pair. The loop guard must drop it.
	err = events.PublishInbound(ctx, bus.InboundMessage{
		GuildID: "g1", ChannelID: "chan-b", MessageID: "sent-1",
		SenderID: "user-2", SenderName: "bob", Content: sent.Translated,
	})
	if err != nil {
		t.Fatalf("publish echo: %v", err)
	}

	// A second genuine message proves the engine is still consuming, which
	// also bounds how long the echo could have been in flight.
	err = events.PublishInbound(ctx, bus.InboundMessage{
		GuildID: "g1", ChannelID: "chan-a", MessageID: "m2",
		SenderID: "user-3", SenderName: "carol", Content: "good morning",
	})
	if err != nil {
		t.Fatalf("publish second message: %v", err)
	}

	waitFor(t, func() bool { return len(platform.snapshot()) == 2 })

	for _, out := range platform.snapshot() {
		if out.SourceMessageID == "sent-1" {
			t.Error("relay output was re-translated: loop guard failed")
		}
	}
}

// TestPairPersistenceAcrossRestart verifies pairs written through one graph
// are visible to a fresh graph over the same store file.
func TestPairPersistenceAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.json")

	graph := pairs.NewGraph(pairs.NewJSONStore(path))
	added, err := graph.AddPair(pairs.Pair{
		GuildID: "g1", SourceChannel: "chan-a", TargetChannel: "chan-b",
		SourceLang: "auto", TargetLang: "de",
	})
	if err != nil {
		t.Fatalf("add pair: %v", err)
	}
	if err := graph.Close(); err != nil {
		t.Fatalf("close graph: %v", err)
	}

	reopened := pairs.NewGraph(pairs.NewJSONStore(path))
	defer reopened.Close()
	if err := reopened.LoadGuild(context.Background(), "g1"); err != nil {
		t.Fatalf("load guild: %v", err)
	}

	edges := reopened.EdgesFrom("chan-a")
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge after restart, got %d", len(edges))
	}
	if edges[0].ID != added.ID || edges[0].TargetLang != "de" {
		t.Errorf("edge did not survive restart intact: %+v", edges[0])
	}
}
