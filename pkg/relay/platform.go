// Package relay implements the message translation relay engine: the
// component that decides, for every inbound message or reaction event,
// whether and how to translate it, which provider handles it, how its own
// output is kept out of the input stream, and how throughput is bounded
// per user, channel and service.
package relay

import (
	"context"
	"errors"

	"github.com/sahiljaat11/discord-translator-bot/pkg/providers"
)

// ErrChannelUnreachable is returned by platforms when a target channel
// cannot be fetched (deleted, or no permission).
var ErrChannelUnreachable = errors.New("target channel unreachable")

// Outgoing is a translated message for the platform to deliver.
type Outgoing struct {
	TargetChannel string

	SourceGuildID   string
	SourceChannelID string
	SourceMessageID string
	AuthorID        string
	AuthorName      string

	Original   string
	Translated string
	SourceLang string
	TargetLang string
	Provider   string

	// ReplyTo, when set, asks the platform to deliver the translation as
	// a reply to that message in TargetChannel. Used by the reaction path.
	ReplyTo string
}

// FetchedMessage is the subset of a platform message the reaction path
// needs.
type FetchedMessage struct {
	Content    string
	AuthorID   string
	AuthorName string
	AuthorBot  bool
}

// Platform is the chat-platform collaborator as seen by the engine.
type Platform interface {
	// Send delivers a translated message and returns the sent message's
	// platform id, so the engine can register it with the loop guard.
	Send(ctx context.Context, out Outgoing) (string, error)

	// CheckChannel reports ErrChannelUnreachable when the channel cannot
	// be used as a relay target.
	CheckChannel(ctx context.Context, channelID string) error

	// FetchMessage loads a message for on-demand translation.
	FetchMessage(ctx context.Context, channelID, messageID string) (FetchedMessage, error)
}

// Translator is the provider chain as seen by the engine. Satisfied by
// *providers.Chain and by test fakes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (providers.Result, error)
}
