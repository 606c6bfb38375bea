// Package anthropicprovider adapts the Anthropic Messages API as a
// translation provider with universal language coverage.
package anthropicprovider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/langcodes"
)

const defaultModel = "claude-haiku-4-5"

const systemPrompt = "You are a translation engine. Translate the user's " +
	"message exactly, preserving tone, emoji and formatting. Respond with " +
	"only the translation, no commentary."

type Provider struct {
	client *anthropic.Client
	apiKey string
	model  string
}

func New(apiKey, apiBase, model string) *Provider {
	if model == "" {
		model = defaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if apiBase != "" {
		opts = append(opts, option.WithBaseURL(apiBase))
	}
	client := anthropic.NewClient(opts...)
	return &Provider{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

func (p *Provider) Name() string         { return "anthropic" }
func (p *Provider) Configured() bool     { return p.apiKey != "" }
func (p *Provider) NativeDetect() bool   { return true }
func (p *Provider) Supports(string) bool { return true }

func (p *Provider) Translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 2048,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(instruction(source, target) + "\n\n" + text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages call: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			tb := block.AsText()
			sb.WriteString(tb.Text)
		}
	}

	translated := strings.TrimSpace(sb.String())
	if translated == "" {
		return "", fmt.Errorf("anthropic: empty completion")
	}
	return translated, nil
}

func instruction(source, target string) string {
	if source == "auto" {
		return fmt.Sprintf("Translate the following message into %s.", langcodes.Name(target))
	}
	return fmt.Sprintf("Translate the following message from %s into %s.",
		langcodes.Name(source), langcodes.Name(target))
}
