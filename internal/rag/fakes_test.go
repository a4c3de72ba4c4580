package rag

import (
	"context"
	"fmt"

	"email-rag/internal/models"
)

// fakeEmbedder returns a fixed vector and can be told to fail on the n-th call.
type fakeEmbedder struct {
	vec    []float32
	calls  []string
	failAt int // 1-based call index, 0 = never fail
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return nil, fmt.Errorf("embedding backend down")
	}
	if f.vec != nil {
		return f.vec, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// fakeStore records writes and serves canned search/metadata results.
type fakeStore struct {
	emails   []*models.Email
	sections []*models.EmailSection
	nextID   int64

	insertEmailErr error
	failSectionAt  int // 1-based section_order to fail on, 0 = never

	matches   []models.SectionMatch
	searchErr error
	metas     []models.EmailMeta
	metaErr   error

	searchedThreshold float64
	searchedLimit     int
	requestedIDs      []int64
}

func (f *fakeStore) InsertEmail(ctx context.Context, email *models.Email) (int64, error) {
	if f.insertEmailErr != nil {
		return 0, f.insertEmailErr
	}
	f.nextID++
	email.ID = f.nextID
	f.emails = append(f.emails, email)
	return email.ID, nil
}

func (f *fakeStore) InsertSection(ctx context.Context, section *models.EmailSection) error {
	if f.failSectionAt > 0 && section.SectionOrder == f.failSectionAt {
		return fmt.Errorf("section write rejected")
	}
	f.sections = append(f.sections, section)
	return nil
}

func (f *fakeStore) SearchSimilar(ctx context.Context, queryEmbedding []float32, threshold float64, limit int) ([]models.SectionMatch, error) {
	f.searchedThreshold = threshold
	f.searchedLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.matches, nil
}

func (f *fakeStore) GetEmailsByIDs(ctx context.Context, ids []int64) ([]models.EmailMeta, error) {
	f.requestedIDs = ids
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	return f.metas, nil
}

func validEmail(body string) *models.Email {
	return &models.Email{
		Subject:   "Weekend plans",
		Sender:    "abubakr.mohammed2508@gmail.com",
		Recipient: []string{"umar11@gmail.com"},
		Body:      body,
	}
}
