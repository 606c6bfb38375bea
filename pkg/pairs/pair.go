// Package pairs owns the channel pair graph: the directed mapping from
// source channel and language to target channel and language that drives
// relay fan-out. The in-memory index is the source of truth for the
// running process; persistence is an asynchronous write-through.
package pairs

import (
	"errors"
	"time"
)

// AutoLang is the sentinel source tag requesting detection instead of a
// declared language.
const AutoLang = "auto"

var (
	ErrSameChannel  = errors.New("source and target channel are identical")
	ErrSameLanguage = errors.New("source and target language are identical")
	ErrAutoTarget   = errors.New("target language cannot be auto")
	ErrDuplicate    = errors.New("a pair for this channel direction already exists")
	ErrNotFound     = errors.New("pair not found")
	ErrIncomplete   = errors.New("pair is missing required fields")
)

// Pair is a directed translation edge between two channels.
type Pair struct {
	ID            string    `json:"id"`
	GuildID       string    `json:"guild_id"`
	SourceChannel string    `json:"source_channel"`
	TargetChannel string    `json:"target_channel"`
	SourceLang    string    `json:"source_lang"` // may be AutoLang
	TargetLang    string    `json:"target_lang"` // never AutoLang
	CreatedAt     time.Time `json:"created_at"`
}

// Validate checks the pair invariants that must hold before any mutation.
func (p Pair) Validate() error {
	if p.GuildID == "" || p.SourceChannel == "" || p.TargetChannel == "" ||
		p.SourceLang == "" || p.TargetLang == "" {
		return ErrIncomplete
	}
	if p.SourceChannel == p.TargetChannel {
		return ErrSameChannel
	}
	if p.TargetLang == AutoLang {
		return ErrAutoTarget
	}
	if p.SourceLang == p.TargetLang {
		// auto source may fan into any target, including one that later
		// detects as the same language; that is resolved at relay time.
		return ErrSameLanguage
	}
	return nil
}
