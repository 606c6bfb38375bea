// Package mymemory adapts the keyless MyMemory translation API. It is the
// chain's last resort: universal coverage, no credentials, but it cannot
// detect the source language itself, so the chain hands it an explicitly
// resolved tag.
package mymemory

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/langcodes"
)

const apiBase = "https://api.mymemory.translated.net"

type Provider struct {
	client  *resty.Client
	enabled bool
	email   string // raises the free daily quota when set
}

func New(enabled bool, email string) *Provider {
	return &Provider{
		client:  resty.New().SetBaseURL(apiBase),
		enabled: enabled,
		email:   email,
	}
}

// NewWithBaseURL is used by tests to point the adapter at a stub server.
func NewWithBaseURL(baseURL string) *Provider {
	return &Provider{
		client:  resty.New().SetBaseURL(baseURL),
		enabled: true,
	}
}

func (p *Provider) Name() string         { return "mymemory" }
func (p *Provider) Configured() bool     { return p.enabled }
func (p *Provider) NativeDetect() bool   { return false }
func (p *Provider) Supports(string) bool { return true }

type translateResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus any `json:"responseStatus"` // int normally, string on some errors
}

func (p *Provider) Translate(ctx context.Context, text, source, target string) (string, error) {
	req := p.client.R().
		SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", langcodes.Base(source)+"|"+langcodes.Base(target))
	if p.email != "" {
		req.SetQueryParam("de", p.email)
	}

	var out translateResponse
	resp, err := req.SetResult(&out).Get("/get")
	if err != nil {
		return "", fmt.Errorf("mymemory request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("mymemory: unexpected status %s", resp.Status())
	}
	if status := fmt.Sprintf("%v", out.ResponseStatus); status != "200" {
		return "", fmt.Errorf("mymemory: response status %s", status)
	}
	if out.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("mymemory: empty translation in response")
	}
	return out.ResponseData.TranslatedText, nil
}
