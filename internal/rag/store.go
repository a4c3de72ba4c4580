package rag

import (
	"context"

	"email-rag/internal/models"
)

// Store is everything the pipelines need from the persistence layer.
// SearchSimilar returns rows already ranked by the store, possibly fewer
// than limit; GetEmailsByIDs is a single batched lookup and may omit ids
// that no longer resolve to a row.
type Store interface {
	InsertEmail(ctx context.Context, email *models.Email) (int64, error)
	InsertSection(ctx context.Context, section *models.EmailSection) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, threshold float64, limit int) ([]models.SectionMatch, error)
	GetEmailsByIDs(ctx context.Context, ids []int64) ([]models.EmailMeta, error)
}
