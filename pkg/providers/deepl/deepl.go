// Package deepl adapts the DeepL REST API as a translation provider.
package deepl

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/langcodes"
)

const defaultAPIBase = "https://api-free.deepl.com"

// Default supported target tags; overridable via configuration since
// DeepL's coverage grows over time.
var defaultLanguages = []string{
	"bg", "cs", "da", "de", "el", "en", "es", "et", "fi", "fr", "hu",
	"id", "it", "ja", "ko", "lt", "lv", "nl", "no", "pl", "pt", "ro",
	"ru", "sk", "sl", "sv", "tr", "uk", "zh",
}

// DeepL wants target codes like EN-US and PT-PT where a bare two-letter
// tag would be deprecated or ambiguous.
var targetOverrides = map[string]string{
	"en": "EN-US",
	"pt": "PT-PT",
	"no": "NB",
}

type Provider struct {
	client    *resty.Client
	apiKey    string
	languages map[string]bool
}

func New(apiKey, apiBase string, languages []string) *Provider {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	if len(languages) == 0 {
		languages = defaultLanguages
	}
	supported := make(map[string]bool, len(languages))
	for _, l := range languages {
		supported[langcodes.Base(l)] = true
	}
	return &Provider{
		client:    resty.New().SetBaseURL(apiBase),
		apiKey:    apiKey,
		languages: supported,
	}
}

func (p *Provider) Name() string       { return "deepl" }
func (p *Provider) Configured() bool   { return p.apiKey != "" }
func (p *Provider) NativeDetect() bool { return true }

func (p *Provider) Supports(tag string) bool {
	return p.languages[langcodes.Base(tag)]
}

type translateResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

func (p *Provider) Translate(ctx context.Context, text, source, target string) (string, error) {
	body := map[string]any{
		"text":        []string{text},
		"target_lang": targetCode(target),
	}
	if source != "auto" {
		body["source_lang"] = strings.ToUpper(langcodes.Base(source))
	}

	var out translateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "DeepL-Auth-Key "+p.apiKey).
		SetBody(body).
		SetResult(&out).
		Post("/v2/translate")
	if err != nil {
		return "", fmt.Errorf("deepl request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("deepl: unexpected status %s", resp.Status())
	}
	if len(out.Translations) == 0 {
		return "", fmt.Errorf("deepl: empty translations in response")
	}
	return out.Translations[0].Text, nil
}

func targetCode(tag string) string {
	base := langcodes.Base(tag)
	if code, ok := targetOverrides[base]; ok {
		return code
	}
	return strings.ToUpper(base)
}
