package llmservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"email-rag/internal/config"
)

// Generator produces text from a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError reports a failed generation call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client calls the configured chat model through langchaingo.
type Client struct {
	llm   llms.Model
	model string
}

func NewClient(cfg *config.LLMConfig) (*Client, error) {
	var (
		llm llms.Model
		err error
	)
	switch cfg.Provider {
	case "ollama":
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
	default:
		llm, err = openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(cfg.Key),
			openai.WithModel(cfg.Model),
		)
	}
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm, model: cfg.Model}, nil
}

// Generate sends the prompt as a single human message and returns the model
// output verbatim. No retries; callers may layer retry policy externally.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log.Debug().Str("model", c.model).Int("prompt_len", len(prompt)).Msg("Generating content")

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}
	res, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if len(res.Choices) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("model returned no choices")}
	}
	return res.Choices[0].Content, nil
}
