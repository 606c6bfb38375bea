package channels

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/sahiljaat11/discord-translator-bot/pkg/bus"
	"github.com/sahiljaat11/discord-translator-bot/pkg/config"
	"github.com/sahiljaat11/discord-translator-bot/pkg/logger"
	"github.com/sahiljaat11/discord-translator-bot/pkg/pairs"
	"github.com/sahiljaat11/discord-translator-bot/pkg/relay"
)

const embedColor = 0x5865F2

// StatsFunc supplies engine state for the status command without coupling
// the adapter to the engine type.
type StatsFunc func() relay.Stats

// DiscordChannel is the Discord adapter. It publishes gateway events to
// the bus, owns the slash command surface for pair management, and acts
// as the engine's Platform for delivery.
type DiscordChannel struct {
	*BaseChannel
	session *discordgo.Session
	graph   *pairs.Graph
	stats   StatsFunc
	ctx     context.Context
}

func NewDiscordChannel(cfg config.DiscordConfig, events *bus.EventBus,
	graph *pairs.Graph, stats StatsFunc) (*DiscordChannel, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord token not configured")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	return &DiscordChannel{
		BaseChannel: NewBaseChannel("discord", events),
		session:     session,
		graph:       graph,
		stats:       stats,
	}, nil
}

func (d *DiscordChannel) Start(ctx context.Context) error {
	d.ctx = ctx

	d.session.AddHandler(d.onReady)
	d.session.AddHandler(d.onGuildCreate)
	d.session.AddHandler(d.onMessageCreate)
	d.session.AddHandler(d.onMessageUpdate)
	d.session.AddHandler(d.onReactionAdd)
	d.session.AddHandler(d.onInteraction)

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("opening discord gateway: %w", err)
	}

	if err := d.registerCommands(); err != nil {
		d.session.Close()
		return err
	}

	d.SetRunning(true)
	logger.InfoC("discord", "Discord channel started")
	return nil
}

func (d *DiscordChannel) Stop(_ context.Context) error {
	d.SetRunning(false)
	return d.session.Close()
}

func (d *DiscordChannel) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	logger.InfoCF("discord", "Gateway ready", map[string]any{
		"user_id":  s.State.User.ID,
		"username": s.State.User.Username,
	})
}

func (d *DiscordChannel) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if err := d.graph.LoadGuild(d.ctx, g.ID); err != nil {
		logger.ErrorCF("discord", "Failed to load guild pairs", map[string]any{
			"guild_id": g.ID,
			"error":    err.Error(),
		})
	}
}

func (d *DiscordChannel) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	d.publishMessage(m.Message, false)
}

func (d *DiscordChannel) onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	// Embed unfurls arrive as updates with no author.
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	d.publishMessage(m.Message, true)
}

func (d *DiscordChannel) publishMessage(m *discordgo.Message, edited bool) {
	err := d.events.PublishInbound(d.ctx, bus.InboundMessage{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		MessageID:  m.ID,
		SenderID:   m.Author.ID,
		SenderName: m.Author.Username,
		Content:    m.Content,
		SenderBot:  m.Author.Bot,
		Edited:     edited,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WarnCF("discord", "Dropping inbound message", map[string]any{
			"message_id": m.ID,
			"error":      err.Error(),
		})
	}
}

func (d *DiscordChannel) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	lang, ok := LangForFlag(r.Emoji.Name)
	if !ok {
		return
	}

	err := d.events.PublishReaction(d.ctx, bus.ReactionEvent{
		GuildID:    r.GuildID,
		ChannelID:  r.ChannelID,
		MessageID:  r.MessageID,
		UserID:     r.UserID,
		TargetLang: lang,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WarnCF("discord", "Dropping reaction event", map[string]any{
			"message_id": r.MessageID,
			"error":      err.Error(),
		})
	}
}

// Send implements relay.Platform.
func (d *DiscordChannel) Send(ctx context.Context, out relay.Outgoing) (string, error) {
	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{renderEmbed(out)},
	}
	if out.ReplyTo != "" {
		send.Reference = &discordgo.MessageReference{
			MessageID: out.ReplyTo,
			ChannelID: out.TargetChannel,
			GuildID:   out.SourceGuildID,
		}
	}

	msg, err := d.session.ChannelMessageSendComplex(out.TargetChannel, send,
		discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("sending translation: %w", err)
	}
	return msg.ID, nil
}

// CheckChannel implements relay.Platform. The state cache answers for
// channels the bot can already see; anything else falls back to the REST
// API.
func (d *DiscordChannel) CheckChannel(ctx context.Context, channelID string) error {
	if _, err := d.session.State.Channel(channelID); err == nil {
		return nil
	}
	if _, err := d.session.Channel(channelID, discordgo.WithContext(ctx)); err != nil {
		return relay.ErrChannelUnreachable
	}
	return nil
}

// FetchMessage implements relay.Platform.
func (d *DiscordChannel) FetchMessage(ctx context.Context, channelID, messageID string) (relay.FetchedMessage, error) {
	msg, err := d.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return relay.FetchedMessage{}, fmt.Errorf("fetching message: %w", err)
	}

	fetched := relay.FetchedMessage{Content: msg.Content}
	if msg.Author != nil {
		fetched.AuthorID = msg.Author.ID
		fetched.AuthorName = msg.Author.Username
		fetched.AuthorBot = msg.Author.Bot
	}
	return fetched, nil
}

func renderEmbed(out relay.Outgoing) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: out.AuthorName,
		},
		Description: out.Translated,
		Color:       embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s → %s · %s", out.SourceLang, out.TargetLang, out.Provider),
		},
	}
}
