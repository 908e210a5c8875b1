package provider

import (
	"context"
	"errors"
	"io"

	"auto-collection-gen/internal/config"
	"auto-collection-gen/internal/generator"
	"auto-collection-gen/internal/logger"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements the Client interface for every backend that speaks
// the OpenAI chat-completions protocol. The openai and deepseek provider
// configurations both construct this type; they differ only in base URL,
// credential and model.
type OpenAIClient struct {
	name   string
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.LLMConfig, log logger.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		name:   cfg.Provider,
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: log,
	}
}

// Name implements the Client interface
func (c *OpenAIClient) Name() string {
	return c.name
}

// Generate submits the prompt as a streamed, JSON-mode chat completion.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (Stream, error) {
	c.logger.Debug(ctx, "requesting chat completion stream", map[string]interface{}{
		"provider": c.name,
		"model":    c.model,
	})

	req := openai.ChatCompletionRequest{
		Model:  c.model,
		Stream: true,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: generator.SystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, &ProviderError{Provider: c.name, Err: err}
	}
	return &chatStream{provider: c.name, stream: stream}, nil
}

// chatStream adapts an openai.ChatCompletionStream to the Stream interface.
// Each network chunk yields zero or one text fragment extracted from the
// delta payload; empty deltas are skipped rather than surfaced.
type chatStream struct {
	provider string
	stream   *openai.ChatCompletionStream
}

func (s *chatStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", &ProviderError{Provider: s.provider, Err: err}
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
}

func (s *chatStream) Close() error {
	return s.stream.Close()
}
