package rag

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"email-rag/internal/llmservice"
	"email-rag/internal/models"
)

// Answerer runs the full question-answering pipeline: retrieve, assemble
// context, render the prompt, generate.
type Answerer struct {
	retriever      *Retriever
	generator      llmservice.Generator
	promptTemplate string
	matchThreshold float64
	matchCount     int
}

func NewAnswerer(retriever *Retriever, generator llmservice.Generator, promptTemplate string, matchThreshold float64, matchCount int) *Answerer {
	if promptTemplate == "" {
		promptTemplate = models.AnswerPromptTemplate
	}
	if matchCount <= 0 {
		matchCount = models.DefaultMatchCount
	}
	return &Answerer{
		retriever:      retriever,
		generator:      generator,
		promptTemplate: promptTemplate,
		matchThreshold: matchThreshold,
		matchCount:     matchCount,
	}
}

// Answer returns the generation model's output verbatim.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	candidates, err := a.retriever.Retrieve(ctx, question, a.matchThreshold, a.matchCount)
	if err != nil {
		return "", err
	}

	contextBlock := AssembleContext(candidates)
	log.Debug().Int("candidates", len(candidates)).Int("context_len", len(contextBlock)).Msg("Context assembled")

	prompt := fmt.Sprintf(a.promptTemplate, contextBlock, question)
	return a.generator.Generate(ctx, prompt)
}
