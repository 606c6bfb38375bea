package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name         string
	configured   bool
	languages    map[string]bool // nil means universal
	nativeDetect bool
	failWith     error
	calls        int
	lastSource   string
}

func (f *fakeProvider) Name() string       { return f.name }
func (f *fakeProvider) Configured() bool   { return f.configured }
func (f *fakeProvider) NativeDetect() bool { return f.nativeDetect }

func (f *fakeProvider) Supports(tag string) bool {
	if f.languages == nil {
		return true
	}
	return f.languages[tag]
}

func (f *fakeProvider) Translate(_ context.Context, text, source, target string) (string, error) {
	f.calls++
	f.lastSource = source
	if f.failWith != nil {
		return "", f.failWith
	}
	return "[" + f.name + ":" + target + "] " + text, nil
}

func detectEnglish(string) string { return "en" }

func TestChainPrefersHighestPriority(t *testing.T) {
	a := &fakeProvider{name: "a", configured: true}
	b := &fakeProvider{name: "b", configured: true}

	c := NewChain(detectEnglish)
	c.Add(b, 20)
	c.Add(a, 10)

	res, err := c.Translate(context.Background(), "hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "a", res.Provider)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 0, b.calls)
}

func TestChainFallbackOnFailure(t *testing.T) {
	a := &fakeProvider{name: "a", configured: true, failWith: errors.New("http 500")}
	b := &fakeProvider{name: "b", configured: true, languages: map[string]bool{"fr": true, "en": true}}

	c := NewChain(detectEnglish)
	c.Add(a, 10)
	c.Add(b, 20)

	res, err := c.Translate(context.Background(), "hello", "en", "fr")
	require.NoError(t, err, "failure of a must not surface when b succeeds")
	assert.Equal(t, "b", res.Provider)
	assert.Equal(t, 1, a.calls, "failed provider is not retried within one call")
}

func TestChainSkipsUnsupportedTarget(t *testing.T) {
	limited := &fakeProvider{name: "limited", configured: true, languages: map[string]bool{"de": true}}
	universal := &fakeProvider{name: "universal", configured: true}

	c := NewChain(detectEnglish)
	c.Add(limited, 10)
	c.Add(universal, 20)

	res, err := c.Translate(context.Background(), "hello", "auto", "fr")
	require.NoError(t, err)
	assert.Equal(t, "universal", res.Provider)
	assert.Equal(t, 0, limited.calls)
}

func TestChainSkipsUnconfiguredSilently(t *testing.T) {
	unconfigured := &fakeProvider{name: "nokey", configured: false}
	working := &fakeProvider{name: "working", configured: true}

	c := NewChain(detectEnglish)
	c.Add(unconfigured, 10)
	c.Add(working, 20)

	res, err := c.Translate(context.Background(), "hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "working", res.Provider)
	assert.Equal(t, 0, unconfigured.calls)
}

func TestChainExhausted(t *testing.T) {
	a := &fakeProvider{name: "a", configured: true, failWith: errors.New("timeout")}
	b := &fakeProvider{name: "b", configured: true, failWith: errors.New("bad payload")}

	c := NewChain(detectEnglish)
	c.Add(a, 10)
	c.Add(b, 20)

	_, err := c.Translate(context.Background(), "hello", "en", "es")
	assert.ErrorIs(t, err, ErrAllProvidersExhausted)
}

func TestChainEmptyIsExhausted(t *testing.T) {
	c := NewChain(detectEnglish)
	_, err := c.Translate(context.Background(), "hello", "en", "es")
	assert.ErrorIs(t, err, ErrAllProvidersExhausted)
}

func TestChainSameLanguageShortCircuits(t *testing.T) {
	p := &fakeProvider{name: "p", configured: true}
	c := NewChain(detectEnglish)
	c.Add(p, 10)

	res, err := c.Translate(context.Background(), "bonjour", "fr", "fr")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, 0, p.calls, "no provider may be invoked for a same-language request")
}

func TestChainAutoPassthroughToNativeDetection(t *testing.T) {
	native := &fakeProvider{name: "native", configured: true, nativeDetect: true}
	c := NewChain(func(string) string {
		t.Fatal("local detector must not run for native-detection providers")
		return ""
	})
	c.Add(native, 10)

	res, err := c.Translate(context.Background(), "hola que tal", "auto", "en")
	require.NoError(t, err)
	assert.Equal(t, "native", res.Provider)
	assert.Equal(t, "auto", native.lastSource, "auto passes through unresolved")
}

func TestChainResolvesAutoForExplicitSourceProvider(t *testing.T) {
	explicit := &fakeProvider{name: "explicit", configured: true, nativeDetect: false}
	c := NewChain(detectEnglish)
	c.Add(explicit, 10)

	res, err := c.Translate(context.Background(), "hello world", "auto", "es")
	require.NoError(t, err)
	assert.Equal(t, "explicit", res.Provider)
	assert.Equal(t, "en", explicit.lastSource)
}

func TestChainAutoResolvingToTargetSkips(t *testing.T) {
	explicit := &fakeProvider{name: "explicit", configured: true}
	c := NewChain(detectEnglish)
	c.Add(explicit, 10)

	res, err := c.Translate(context.Background(), "hello world", "auto", "en")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, 0, explicit.calls)
}

type recordingMeter struct {
	records []string
	failed  []bool
}

func (r *recordingMeter) Record(provider string, _ int, _ time.Duration, failed bool) {
	r.records = append(r.records, provider)
	r.failed = append(r.failed, failed)
}

func TestChainRecordsUsage(t *testing.T) {
	a := &fakeProvider{name: "a", configured: true, failWith: errors.New("boom")}
	b := &fakeProvider{name: "b", configured: true}

	rec := &recordingMeter{}
	c := NewChain(detectEnglish)
	c.SetRecorder(rec)
	c.Add(a, 10)
	c.Add(b, 20)

	_, err := c.Translate(context.Background(), "hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rec.records)
	assert.Equal(t, []bool{true, false}, rec.failed)
}
