package embedding

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"email-rag/internal/config"
)

// Embedder turns text into a fixed-dimensionality vector. Satisfied by
// langchaingo's *embeddings.EmbedderImpl and by test fakes.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingError reports a failed or empty embedding call.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// NewEmbedder builds an embedder from the configured provider.
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaEmbedder(cfg)
	default:
		return NewOpenAIEmbedder(cfg)
	}
}

// NewOpenAIEmbedder wires an OpenAI-compatible embedding endpoint
// (OpenAI, OpenRouter and friends).
func NewOpenAIEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("embedding_model", cfg.Model).
		Msg("Initializing OpenAI-compatible embedder")

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.Key),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

// NewOllamaEmbedder wires a local ollama embedding model.
func NewOllamaEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("embedding_model", cfg.Model).
		Msg("Initializing ollama embedder")

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedText embeds a single text span. One call per span, no retries, no
// batching. An errored call or an empty vector comes back as *EmbeddingError.
func EmbedText(ctx context.Context, embedder Embedder, text string) ([]float32, error) {
	vec, err := embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}
	if len(vec) == 0 {
		return nil, &EmbeddingError{Err: fmt.Errorf("model returned no vector")}
	}
	return vec, nil
}
