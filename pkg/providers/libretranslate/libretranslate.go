// Package libretranslate adapts a self-hosted or public LibreTranslate
// instance as a translation provider.
package libretranslate

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/langcodes"
)

var defaultLanguages = []string{
	"ar", "cs", "da", "de", "el", "en", "es", "fi", "fr", "he", "hi",
	"hu", "id", "it", "ja", "ko", "nl", "pl", "pt", "ro", "ru", "sk",
	"sv", "th", "tr", "uk", "vi", "zh",
}

type Provider struct {
	client    *resty.Client
	url       string
	apiKey    string
	languages map[string]bool
}

func New(url, apiKey string, languages []string) *Provider {
	if len(languages) == 0 {
		languages = defaultLanguages
	}
	supported := make(map[string]bool, len(languages))
	for _, l := range languages {
		supported[langcodes.Base(l)] = true
	}
	return &Provider{
		client:    resty.New().SetBaseURL(url),
		url:       url,
		apiKey:    apiKey,
		languages: supported,
	}
}

func (p *Provider) Name() string       { return "libretranslate" }
func (p *Provider) Configured() bool   { return p.url != "" }
func (p *Provider) NativeDetect() bool { return true }

func (p *Provider) Supports(tag string) bool {
	return p.languages[langcodes.Base(tag)]
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (p *Provider) Translate(ctx context.Context, text, source, target string) (string, error) {
	body := map[string]any{
		"q":      text,
		"source": langcodes.Base(source),
		"target": langcodes.Base(target),
		"format": "text",
	}
	if source == "auto" {
		body["source"] = "auto"
	}
	if p.apiKey != "" {
		body["api_key"] = p.apiKey
	}

	var out translateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/translate")
	if err != nil {
		return "", fmt.Errorf("libretranslate request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("libretranslate: unexpected status %s", resp.Status())
	}
	if out.TranslatedText == "" {
		return "", fmt.Errorf("libretranslate: empty translation in response")
	}
	return out.TranslatedText, nil
}
