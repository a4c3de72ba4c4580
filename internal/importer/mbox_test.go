package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"email-rag/internal/models"
	"email-rag/internal/rag"
)

type stubEmbedder struct{}

func (stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.5}, nil
}

type recordingStore struct {
	emails   []*models.Email
	sections []*models.EmailSection
}

func (s *recordingStore) InsertEmail(ctx context.Context, email *models.Email) (int64, error) {
	email.ID = int64(len(s.emails) + 1)
	s.emails = append(s.emails, email)
	return email.ID, nil
}

func (s *recordingStore) InsertSection(ctx context.Context, section *models.EmailSection) error {
	s.sections = append(s.sections, section)
	return nil
}

func (s *recordingStore) SearchSimilar(ctx context.Context, queryEmbedding []float32, threshold float64, limit int) ([]models.SectionMatch, error) {
	return nil, nil
}

func (s *recordingStore) GetEmailsByIDs(ctx context.Context, ids []int64) ([]models.EmailMeta, error) {
	return nil, nil
}

func writeMBox(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mbox")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write mbox: %v", err)
	}
	return path
}

const twoMessageMBox = "From someone@example.com Sat Jan 01 00:00:00 2022\n" +
	"From: Someone <someone@example.com>\n" +
	"To: Tyler <tyler@example.com>, Other <other@example.com>\n" +
	"Subject: =?UTF-8?Q?Hello?=\n" +
	"\n" +
	"Body one with a few words\n" +
	"\n" +
	"From tyler@example.com Sat Jan 02 00:00:00 2022\n" +
	"From: Tyler <tyler@example.com>\n" +
	"To: Someone <someone@example.com>\n" +
	"Cc: Third <third@example.com>\n" +
	"Subject: Re: Hello\n" +
	"\n" +
	"Body two\n" +
	">From the archives\n"

func TestImportMBox_Basic(t *testing.T) {
	store := &recordingStore{}
	ing := rag.NewIngestor(store, stubEmbedder{}, 2000)

	res, err := ImportMBox(context.Background(), ing, MBoxImportOptions{
		Path: writeMBox(t, twoMessageMBox),
	})
	if err != nil {
		t.Fatalf("ImportMBox: %v", err)
	}

	if res.MessagesSeen != 2 || res.EmailsIngested != 2 || res.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(store.emails) != 2 {
		t.Fatalf("expected 2 emails stored, got %d", len(store.emails))
	}

	first := store.emails[0]
	if first.Sender != "someone@example.com" {
		t.Errorf("expected decoded sender, got %q", first.Sender)
	}
	if first.Subject != "Hello" {
		t.Errorf("expected decoded subject, got %q", first.Subject)
	}
	if len(first.Recipient) != 2 || first.Recipient[1] != "other@example.com" {
		t.Errorf("expected 2 recipients, got %v", first.Recipient)
	}

	second := store.emails[1]
	if len(second.CC) != 1 || second.CC[0] != "third@example.com" {
		t.Errorf("expected cc list, got %v", second.CC)
	}
	if second.Body != "Body two\nFrom the archives" {
		t.Errorf("expected unescaped body, got %q", second.Body)
	}

	// Each body fits one chunk.
	if len(store.sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(store.sections))
	}
	if store.sections[0].SectionOrder != 1 {
		t.Errorf("expected section order 1, got %d", store.sections[0].SectionOrder)
	}
}

func TestImportMBox_SkipsInvalidMessages(t *testing.T) {
	mbox := "From nobody@example.com Sat Jan 01 00:00:00 2022\n" +
		"From: Nobody <nobody@example.com>\n" +
		"Subject: No recipients\n" +
		"\n" +
		"orphan body\n" +
		"\n" +
		twoMessageMBox

	store := &recordingStore{}
	ing := rag.NewIngestor(store, stubEmbedder{}, 2000)

	res, err := ImportMBox(context.Background(), ing, MBoxImportOptions{
		Path: writeMBox(t, mbox),
	})
	if err != nil {
		t.Fatalf("ImportMBox: %v", err)
	}
	if res.MessagesSeen != 3 || res.EmailsIngested != 2 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestImportMBox_LimitAndDryRun(t *testing.T) {
	store := &recordingStore{}
	ing := rag.NewIngestor(store, stubEmbedder{}, 2000)

	res, err := ImportMBox(context.Background(), ing, MBoxImportOptions{
		Path:          writeMBox(t, twoMessageMBox),
		LimitMessages: 1,
	})
	if err != nil {
		t.Fatalf("ImportMBox: %v", err)
	}
	if res.EmailsIngested != 1 || len(store.emails) != 1 {
		t.Fatalf("expected limit to cap ingestion at 1, got %+v", res)
	}

	dryStore := &recordingStore{}
	dryIng := rag.NewIngestor(dryStore, stubEmbedder{}, 2000)
	res, err = ImportMBox(context.Background(), dryIng, MBoxImportOptions{
		Path:   writeMBox(t, twoMessageMBox),
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("ImportMBox: %v", err)
	}
	if len(dryStore.emails) != 0 || res.EmailsIngested != 2 {
		t.Fatalf("expected dry run to parse without storing, got %+v", res)
	}
}
