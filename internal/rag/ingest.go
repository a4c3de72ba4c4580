package rag

import (
	"context"

	"github.com/rs/zerolog/log"

	"email-rag/internal/chunker"
	"email-rag/internal/embedding"
	"email-rag/internal/models"
)

// Ingestor validates and persists emails, then embeds and persists the
// body chunks one at a time.
type Ingestor struct {
	store     Store
	embedder  embedding.Embedder
	chunkSize int
}

func NewIngestor(store Store, embedder embedding.Embedder, chunkSize int) *Ingestor {
	if chunkSize <= 0 {
		chunkSize = models.DefaultChunkSize
	}
	return &Ingestor{store: store, embedder: embedder, chunkSize: chunkSize}
}

// Ingest stores the email and its embedded sections, returning the assigned
// email id. Chunks are processed strictly in emission order, each embedded
// and persisted before the next one starts; on a mid-sequence failure the
// already persisted sections remain (no rollback across chunks).
func (in *Ingestor) Ingest(ctx context.Context, email *models.Email) (int64, error) {
	if err := ValidateEmail(email); err != nil {
		return 0, err
	}

	emailID, err := in.store.InsertEmail(ctx, email)
	if err != nil {
		return 0, &PersistenceError{Op: "insert email", Err: err}
	}
	log.Debug().Int64("email_id", emailID).Str("subject", email.Subject).Msg("Email stored")

	chunks := chunker.Split(email.Body, in.chunkSize)
	for i, chunk := range chunks {
		vec, err := embedding.EmbedText(ctx, in.embedder, chunk)
		if err != nil {
			return emailID, &ChunkProcessingError{Index: i + 1, Err: err}
		}

		section := &models.EmailSection{
			EmailID:        emailID,
			SectionContent: chunk,
			Embedding:      vec,
			SectionOrder:   i + 1,
		}
		if err := in.store.InsertSection(ctx, section); err != nil {
			return emailID, &ChunkProcessingError{
				Index: i + 1,
				Err:   &PersistenceError{Op: "insert section", Err: err},
			}
		}
	}

	log.Info().Int64("email_id", emailID).Int("sections", len(chunks)).Msg("Email ingested")
	return emailID, nil
}
