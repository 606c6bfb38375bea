package providers

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// DetectFunc resolves an auto source tag locally when the next provider in
// the chain requires an explicit source.
type DetectFunc func(text string) string

// Recorder receives one record per provider invocation. Satisfied by
// meter.Store.
type Recorder interface {
	Record(provider string, characters int, latency time.Duration, failed bool)
}

type ranked struct {
	provider Provider
	priority int
}

// Chain invokes providers in priority order with fallback on failure.
type Chain struct {
	providers []ranked
	detect    DetectFunc
	recorder  Recorder
}

func NewChain(detect DetectFunc) *Chain {
	return &Chain{detect: detect}
}

// SetRecorder attaches a usage recorder. Optional.
func (c *Chain) SetRecorder(r Recorder) {
	c.recorder = r
}

// Add registers a provider with a priority; lower values are tried first.
func (c *Chain) Add(p Provider, priority int) {
	c.providers = append(c.providers, ranked{provider: p, priority: priority})
	sort.SliceStable(c.providers, func(i, j int) bool {
		return c.providers[i].priority < c.providers[j].priority
	})
}

// Names lists the registered providers in chain order.
func (c *Chain) Names() []string {
	out := make([]string, 0, len(c.providers))
	for _, r := range c.providers {
		out = append(out, r.provider.Name())
	}
	return out
}

// Translate runs the chain for one request. A declared source equal to the
// target short-circuits to a Skipped result before any provider is
// consulted, as does an auto source that locally resolves to the target
// when only explicit-source providers remain. Each provider is invoked at
// most once; failures advance the chain; unconfigured providers are
// skipped without counting as failures.
func (c *Chain) Translate(ctx context.Context, text, source, target string) (Result, error) {
	if source != AutoLang && source == target {
		return Result{Skipped: true}, nil
	}

	resolved := source
	var lastErr error

	for _, r := range c.providers {
		p := r.provider
		if !p.Configured() {
			continue
		}
		if !p.Supports(target) {
			continue
		}
		if source != AutoLang && !p.Supports(source) {
			continue
		}

		callSource := resolved
		if callSource == AutoLang && !p.NativeDetect() {
			// Resolve locally only now that a provider actually needs it,
			// so native-detection backends keep doing their own, better,
			// detection.
			resolved = c.detect(text)
			callSource = resolved
		}
		if callSource != AutoLang && callSource == target {
			return Result{Skipped: true}, nil
		}

		start := time.Now()
		translated, err := p.Translate(ctx, text, callSource, target)
		if c.recorder != nil {
			c.recorder.Record(p.Name(), len(text), time.Since(start), err != nil)
		}
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", p.Name(), err)
			continue
		}
		return Result{Text: translated, Provider: p.Name()}, nil
	}

	if lastErr != nil {
		return Result{}, fmt.Errorf("%w: last failure: %v", ErrAllProvidersExhausted, lastErr)
	}
	return Result{}, ErrAllProvidersExhausted
}
