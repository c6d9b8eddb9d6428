package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SumanthSV/AI-Todo-summarizer/config"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// Completer sends a single prompt to a language model. An empty string with
// a nil error means the model answered without any text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter picks the provider named in cfg.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAICompleter(cfg.OpenAIKey, cfg.OpenAIBase, cfg.Model, cfg.MaxTokens), nil
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, cfg.GeminiKey, cfg.Model, cfg.MaxTokens)
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
}

type OpenAICompleter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAICompleter talks to any OpenAI-compatible chat completions API.
// baseURL may be empty for the public endpoint.
func NewOpenAICompleter(apiKey, baseURL, model string, maxTokens int) *OpenAICompleter {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &OpenAICompleter{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	timer := utils.TrackLLMRequest(config.ProviderOpenAI)
	defer timer.ObserveDuration()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

type GeminiCompleter struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func NewGeminiCompleter(ctx context.Context, apiKey, model string, maxTokens int) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	timer := utils.TrackLLMRequest(config.ProviderGemini)
	defer timer.ObserveDuration()

	model := c.client.GenerativeModel(c.model)
	maxTokens := c.maxTokens
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return text.String(), nil
}

func (c *GeminiCompleter) Close() error {
	return c.client.Close()
}
