package relay

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sahiljaat11/discord-translator-bot/pkg/bus"
	"github.com/sahiljaat11/discord-translator-bot/pkg/cache"
	"github.com/sahiljaat11/discord-translator-bot/pkg/config"
	"github.com/sahiljaat11/discord-translator-bot/pkg/loopguard"
	"github.com/sahiljaat11/discord-translator-bot/pkg/logger"
	"github.com/sahiljaat11/discord-translator-bot/pkg/pairs"
	"github.com/sahiljaat11/discord-translator-bot/pkg/providers"
	"github.com/sahiljaat11/discord-translator-bot/pkg/ratelimit"
)

const (
	defaultSweepInterval = time.Minute
	defaultRetryDelay    = 500 * time.Millisecond
)

// Engine is the relay core. It consumes platform events from the bus one
// at a time, so pipeline state never sees concurrent handlers for two
// messages; the individual stores still lock because platform adapters
// and command handlers touch some of them from their own goroutines.
type Engine struct {
	events     *bus.EventBus
	graph      *pairs.Graph
	translator Translator
	platform   Platform

	memo      *cache.Cache
	cooldown  *ratelimit.Cooldown
	burst     *ratelimit.Burst
	guard     *loopguard.Guard
	pairGuard *loopguard.Guard

	callTimeout      time.Duration
	sweepInterval    time.Duration
	retryDelay       time.Duration
	reactionDisabled map[string]bool
}

// New wires an engine from configuration and its collaborators. Nothing
// starts running until Run is called.
func New(cfg config.RelayConfig, events *bus.EventBus, graph *pairs.Graph,
	translator Translator, platform Platform) *Engine {
	disabled := make(map[string]bool, len(cfg.ReactionDisabledChannels))
	for _, ch := range cfg.ReactionDisabledChannels {
		disabled[ch] = true
	}

	return &Engine{
		events:     events,
		graph:      graph,
		translator: translator,
		platform:   platform,

		memo: cache.New(time.Duration(cfg.CacheTTLSeconds)*time.Second,
			cfg.CacheSizeThreshold),
		cooldown: ratelimit.NewCooldown(time.Duration(cfg.CooldownSeconds)*time.Second, 0),
		burst: ratelimit.NewBurst(cfg.BurstMax,
			time.Duration(cfg.BurstWindowSeconds)*time.Second),
		guard:     loopguard.New(time.Duration(cfg.GuardTTLSeconds) * time.Second),
		pairGuard: loopguard.New(time.Duration(cfg.PairGuardTTLSeconds) * time.Second),

		callTimeout:      time.Duration(cfg.CallTimeoutSeconds) * time.Second,
		sweepInterval:    defaultSweepInterval,
		retryDelay:       defaultRetryDelay,
		reactionDisabled: disabled,
	}
}

// Run drives the engine until the context is cancelled or the bus closes.
func (e *Engine) Run(ctx context.Context) {
	logger.InfoC("relay", "Relay engine started")

	ticker := time.NewTicker(e.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-e.events.Inbound():
			e.HandleMessage(ctx, msg)
		case evt := <-e.events.Reactions():
			e.HandleReaction(ctx, evt)
		case <-ticker.C:
			e.sweep()
		case <-e.events.Done():
			logger.InfoC("relay", "Event bus closed, relay engine stopping")
			return
		case <-ctx.Done():
			logger.InfoC("relay", "Relay engine stopping")
			return
		}
	}
}

// HandleMessage runs the channel relay pipeline for one inbound message.
func (e *Engine) HandleMessage(ctx context.Context, msg bus.InboundMessage) {
	if msg.SenderBot {
		return
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return
	}

	// Own output and already-handled edits read as seen.
	if e.guard.Seen(msg.MessageID) {
		logger.DebugCF("relay", "Message already handled, skipping", map[string]any{
			"message_id": msg.MessageID,
		})
		return
	}

	edges := e.graph.EdgesFrom(msg.ChannelID)
	if len(edges) == 0 {
		return
	}

	if !e.cooldown.Admit(msg.SenderID, msg.ChannelID) {
		logger.DebugCF("relay", "Cooldown active, dropping message", map[string]any{
			"sender_id":  msg.SenderID,
			"channel_id": msg.ChannelID,
		})
		return
	}

	// Marked before any network call so a slow provider cannot let an
	// edit of the same message race into a second pipeline run.
	e.guard.Mark(msg.MessageID)

	for _, edge := range edges {
		if err := e.relayEdge(ctx, msg, content, edge); err != nil {
			logger.ErrorCF("relay", "Edge relay failed", map[string]any{
				"pair_id":        edge.ID,
				"source_channel": edge.SourceChannel,
				"target_channel": edge.TargetChannel,
				"error":          err.Error(),
			})
		}
	}
}

func (e *Engine) relayEdge(ctx context.Context, msg bus.InboundMessage,
	content string, edge pairs.Pair) error {
	res, cached, err := e.translate(ctx, content, edge.SourceLang, edge.TargetLang)
	if err != nil {
		return err
	}
	if res.Skipped {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	if err := e.platform.CheckChannel(callCtx, edge.TargetChannel); err != nil {
		logger.WarnCF("relay", "Target channel unreachable, skipping edge", map[string]any{
			"pair_id":        edge.ID,
			"target_channel": edge.TargetChannel,
		})
		return nil
	}

	sentID, err := e.platform.Send(callCtx, Outgoing{
		TargetChannel:   edge.TargetChannel,
		SourceGuildID:   msg.GuildID,
		SourceChannelID: msg.ChannelID,
		SourceMessageID: msg.MessageID,
		AuthorID:        msg.SenderID,
		AuthorName:      msg.SenderName,
		Original:        content,
		Translated:      res.Text,
		SourceLang:      edge.SourceLang,
		TargetLang:      edge.TargetLang,
		Provider:        res.Provider,
	})
	if err != nil {
		return err
	}

	// The relay's own message must never feed back through a reverse pair.
	e.guard.Mark(sentID)

	logger.InfoCF("relay", "Message relayed", map[string]any{
		"pair_id":        edge.ID,
		"target_channel": edge.TargetChannel,
		"provider":       res.Provider,
		"cached":         cached,
	})
	return nil
}

// translate consults the memo first and falls back to the provider chain,
// retrying once after a short delay when every provider is exhausted.
// The bool reports whether the result came from the memo.
func (e *Engine) translate(ctx context.Context, content, source, target string) (providers.Result, bool, error) {
	if hit, ok := e.memo.Get(content, source, target); ok {
		if hit == nil {
			return providers.Result{Skipped: true}, true, nil
		}
		return providers.Result{Text: *hit, Provider: "cache"}, true, nil
	}

	res, err := e.callChain(ctx, content, source, target)
	if errors.Is(err, providers.ErrAllProvidersExhausted) {
		select {
		case <-time.After(e.retryDelay):
		case <-ctx.Done():
			return providers.Result{}, false, ctx.Err()
		}
		res, err = e.callChain(ctx, content, source, target)
	}
	if err != nil {
		return providers.Result{}, false, err
	}

	if res.Skipped {
		e.memo.Put(content, source, target, nil)
	} else {
		text := res.Text
		e.memo.Put(content, source, target, &text)
	}
	return res, false, nil
}

func (e *Engine) callChain(ctx context.Context, content, source, target string) (providers.Result, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()
	return e.translator.Translate(callCtx, content, source, target)
}

// HandleReaction runs the on-demand translation pipeline for one flag
// reaction.
func (e *Engine) HandleReaction(ctx context.Context, evt bus.ReactionEvent) {
	// One translation per (message, language), no matter how many users
	// pile the same flag on.
	guardKey := evt.MessageID + ":" + evt.TargetLang
	if e.pairGuard.Seen(guardKey) {
		return
	}

	enabled := !e.reactionDisabled[evt.ChannelID]
	if !e.burst.Admit(evt.UserID, evt.GuildID, evt.ChannelID, enabled) {
		logger.DebugCF("relay", "Reaction burst quota exceeded", map[string]any{
			"user_id":    evt.UserID,
			"channel_id": evt.ChannelID,
		})
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	msg, err := e.platform.FetchMessage(fetchCtx, evt.ChannelID, evt.MessageID)
	cancel()
	if err != nil {
		logger.WarnCF("relay", "Could not fetch reacted message", map[string]any{
			"message_id": evt.MessageID,
			"error":      err.Error(),
		})
		return
	}
	if msg.AuthorBot {
		return
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return
	}

	res, cached, err := e.translate(ctx, content, pairs.AutoLang, evt.TargetLang)
	if err != nil {
		logger.ErrorCF("relay", "Reaction translation failed", map[string]any{
			"message_id":  evt.MessageID,
			"target_lang": evt.TargetLang,
			"error":       err.Error(),
		})
		return
	}
	if res.Skipped {
		e.pairGuard.Mark(guardKey)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	sentID, err := e.platform.Send(sendCtx, Outgoing{
		TargetChannel:   evt.ChannelID,
		SourceGuildID:   evt.GuildID,
		SourceChannelID: evt.ChannelID,
		SourceMessageID: evt.MessageID,
		AuthorID:        msg.AuthorID,
		AuthorName:      msg.AuthorName,
		Original:        content,
		Translated:      res.Text,
		SourceLang:      pairs.AutoLang,
		TargetLang:      evt.TargetLang,
		Provider:        res.Provider,
		ReplyTo:         evt.MessageID,
	})
	if err != nil {
		logger.ErrorCF("relay", "Reaction reply failed", map[string]any{
			"message_id": evt.MessageID,
			"error":      err.Error(),
		})
		return
	}

	e.guard.Mark(sentID)
	e.pairGuard.Mark(guardKey)

	logger.InfoCF("relay", "Reaction translation sent", map[string]any{
		"message_id":  evt.MessageID,
		"target_lang": evt.TargetLang,
		"provider":    res.Provider,
		"cached":      cached,
	})
}

func (e *Engine) sweep() {
	e.memo.Sweep()
	e.cooldown.Sweep()
	e.burst.Sweep()
	e.guard.Sweep()
	e.pairGuard.Sweep()
}

// Stats is a point-in-time view of engine state for the status command.
type Stats struct {
	Pairs           int
	CacheEntries    int
	CooldownTracked int
	BurstTracked    int
	GuardEntries    int
}

func (e *Engine) Stats() Stats {
	return Stats{
		Pairs:           e.graph.PairCount(),
		CacheEntries:    e.memo.Size(),
		CooldownTracked: e.cooldown.Tracked(),
		BurstTracked:    e.burst.Tracked(),
		GuardEntries:    e.guard.Len(),
	}
}
