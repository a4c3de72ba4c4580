package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"email-rag/internal/models"
)

const (
	emailsCollection   = "emails"
	sectionsCollection = "email_sections"
	compress           = false
)

// Store is a chromem-go backed implementation of the rag.Store contract for
// local and offline use. Sections live in one collection with their
// pipeline-supplied embeddings; email metadata lives in a second,
// never-queried-by-similarity collection.
type Store struct {
	db       *chromem.DB
	emails   *chromem.Collection
	sections *chromem.Collection

	mu            sync.Mutex
	nextEmailID   int64
	nextSectionID int64
}

// NewStore opens (or creates) the persistent database at dbPath. An empty
// dbPath gives an in-memory store.
func NewStore(dbPath string) (*Store, error) {
	var (
		db  *chromem.DB
		err error
	)
	if dbPath == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	emails, err := db.GetOrCreateCollection(emailsCollection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}
	sections, err := db.GetOrCreateCollection(sectionsCollection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	return &Store{
		db:            db,
		emails:        emails,
		sections:      sections,
		nextEmailID:   int64(emails.Count()) + 1,
		nextSectionID: int64(sections.Count()) + 1,
	}, nil
}

func (s *Store) InsertEmail(ctx context.Context, email *models.Email) (int64, error) {
	s.mu.Lock()
	id := s.nextEmailID
	s.nextEmailID++
	s.mu.Unlock()

	doc := chromem.Document{
		ID: strconv.FormatInt(id, 10),
		Metadata: map[string]string{
			"subject":   email.Subject,
			"sender":    email.Sender,
			"recipient": strings.Join(email.Recipient, ", "),
		},
		Content: email.Body,
		// Placeholder vector; this collection is looked up by id only.
		Embedding: []float32{1},
	}
	if err := s.emails.AddDocument(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to add email document: %v", err)
	}
	email.ID = id
	return id, nil
}

func (s *Store) InsertSection(ctx context.Context, section *models.EmailSection) error {
	s.mu.Lock()
	id := s.nextSectionID
	s.nextSectionID++
	s.mu.Unlock()

	doc := chromem.Document{
		ID: strconv.FormatInt(id, 10),
		Metadata: map[string]string{
			"email_id":      strconv.FormatInt(section.EmailID, 10),
			"section_order": strconv.Itoa(section.SectionOrder),
		},
		Content:   section.SectionContent,
		Embedding: section.Embedding,
	}
	if err := s.sections.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add section document: %v", err)
	}
	section.ID = id
	return nil
}

// SearchSimilar ranks sections by cosine similarity. chromem has no
// threshold parameter, so the cut happens here after the query.
func (s *Store) SearchSimilar(ctx context.Context, queryEmbedding []float32, threshold float64, limit int) ([]models.SectionMatch, error) {
	count := s.sections.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := s.sections.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	var matches []models.SectionMatch
	for _, res := range results {
		similarity := float64(res.Similarity)
		if similarity < threshold {
			continue
		}
		id, _ := strconv.ParseInt(res.ID, 10, 64)
		emailID, _ := strconv.ParseInt(res.Metadata["email_id"], 10, 64)
		matches = append(matches, models.SectionMatch{
			ID:             id,
			EmailID:        emailID,
			SectionContent: res.Content,
			Similarity:     similarity,
		})
	}
	return matches, nil
}

func (s *Store) GetEmailsByIDs(ctx context.Context, ids []int64) ([]models.EmailMeta, error) {
	var metas []models.EmailMeta
	for _, id := range ids {
		doc, err := s.emails.GetByID(ctx, strconv.FormatInt(id, 10))
		if err != nil {
			// Missing metadata rows are tolerated by the retriever.
			log.Debug().Int64("email_id", id).Msg("No metadata document for email")
			continue
		}
		meta := models.EmailMeta{
			ID:      id,
			Subject: doc.Metadata["subject"],
			Sender:  doc.Metadata["sender"],
		}
		if r := doc.Metadata["recipient"]; r != "" {
			meta.Recipient = strings.Split(r, ", ")
		}
		metas = append(metas, meta)
	}
	return metas, nil
}
