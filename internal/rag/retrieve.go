package rag

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"email-rag/internal/embedding"
	"email-rag/internal/models"
)

// Retriever answers "which stored sections are relevant to this question"
// by embedding the question, running a similarity search, and fusing the
// owning emails' metadata into the ranked candidates.
type Retriever struct {
	store    Store
	embedder embedding.Embedder
}

func NewRetriever(store Store, embedder embedding.Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Retrieve returns at most models.TopSections candidates, most relevant
// first. matchThreshold and matchCount shape the initial store query; the
// top-sections cut then narrows the pool for prompt-size control. An empty
// match set yields an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string, matchThreshold float64, matchCount int) ([]models.RetrievedCandidate, error) {
	if matchCount <= 0 {
		matchCount = models.DefaultMatchCount
	}

	queryEmbedding, err := embedding.EmbedText(ctx, r.embedder, question)
	if err != nil {
		return nil, err
	}

	matches, err := r.store.SearchSimilar(ctx, queryEmbedding, matchThreshold, matchCount)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	log.Debug().Int("matches", len(matches)).Float64("threshold", matchThreshold).Msg("Vector search completed")
	if len(matches) == 0 {
		return nil, nil
	}

	candidates := make([]models.RetrievedCandidate, len(matches))
	for i, m := range matches {
		candidates[i] = models.RetrievedCandidate{
			SectionID:      m.ID,
			EmailID:        m.EmailID,
			SectionContent: m.SectionContent,
			Similarity:     m.Similarity,
		}
	}

	// Metadata fusion is best effort: a missing email row leaves the
	// candidate without metadata instead of failing the retrieval.
	metaByID, err := r.fetchMetadata(ctx, matches)
	if err != nil {
		log.Warn().Err(err).Msg("Email metadata fetch failed, candidates proceed without metadata")
	} else {
		for i := range candidates {
			if meta, ok := metaByID[candidates[i].EmailID]; ok {
				candidates[i].Metadata = meta
			}
		}
	}

	// Stable: equal similarities keep the store's return order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if len(candidates) > models.TopSections {
		candidates = candidates[:models.TopSections]
	}
	return candidates, nil
}

func (r *Retriever) fetchMetadata(ctx context.Context, matches []models.SectionMatch) (map[int64]*models.EmailMeta, error) {
	seen := make(map[int64]struct{}, len(matches))
	var ids []int64
	for _, m := range matches {
		if _, ok := seen[m.EmailID]; ok {
			continue
		}
		seen[m.EmailID] = struct{}{}
		ids = append(ids, m.EmailID)
	}

	metas, err := r.store.GetEmailsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.EmailMeta, len(metas))
	for i := range metas {
		byID[metas[i].ID] = &metas[i]
	}
	return byID, nil
}
