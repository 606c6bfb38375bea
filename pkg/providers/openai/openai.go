// Package openaiprovider adapts OpenAI chat completions as a translation
// provider with universal language coverage.
package openaiprovider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sahiljaat11/discord-translator-bot/pkg/providers/langcodes"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = "You are a translation engine. Translate the user's " +
	"message exactly, preserving tone, emoji and formatting. Respond with " +
	"only the translation, no commentary."

type Provider struct {
	client *openai.Client
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
	client := openai.NewClient(opts...)
	return &Provider{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

func (p *Provider) Name() string         { return "openai" }
func (p *Provider) Configured() bool     { return p.apiKey != "" }
func (p *Provider) NativeDetect() bool   { return true }
func (p *Provider) Supports(string) bool { return true }

func (p *Provider) Translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(instruction(source, target) + "\n\n" + text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("openai: empty completion")
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
