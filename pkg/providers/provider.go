// Package providers orders translation backends into a fallback chain.
// Each backend adapter lives in its own subpackage and owns the mapping
// between the relay's two-letter lowercase tags and whatever vocabulary
// its remote service speaks; the chain's selection logic never sees
// provider-specific codes.
package providers

import (
	"context"
	"errors"
)

// AutoLang is the sentinel source tag requesting detection.
const AutoLang = "auto"

var (
	// ErrAllProvidersExhausted is terminal for a single translation
	// attempt: every configured backend failed or none was eligible.
	ErrAllProvidersExhausted = errors.New("all translation providers exhausted")

	// ErrNotConfigured marks a provider missing required credentials.
	// The chain skips such providers silently.
	ErrNotConfigured = errors.New("provider not configured")
)

// Provider is a single translation backend.
type Provider interface {
	Name() string

	// Configured reports whether required credentials are present.
	Configured() bool

	// Supports reports whether the provider covers a language tag.
	// Universal providers return true for everything.
	Supports(tag string) bool

	// NativeDetect reports whether the backend can resolve an "auto"
	// source itself. Providers returning false are handed an explicitly
	// detected source tag by the chain.
	NativeDetect() bool

	// Translate performs one translation. source may be AutoLang only
	// when NativeDetect is true. Fails on timeout, non-2xx responses and
	// malformed payloads.
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Result is the outcome of one chain invocation.
type Result struct {
	Text     string
	Provider string
	// Skipped means the (resolved) source language already matches the
	// target: no translation is necessary and no provider was called.
	Skipped bool
}
