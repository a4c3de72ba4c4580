package rag

import (
	"strings"
	"testing"

	"email-rag/internal/models"
)

func TestNameFromAddress(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"abubakr.mohammed2508@gmail.com", "abubakr"},
		{"umar11@gmail.com", "umar"},
		{"", ""},
		{"abuzar18@gmail.com", "abuzar"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := NameFromAddress(tc.address); got != tc.want {
			t.Errorf("NameFromAddress(%q): expected %q, got %q", tc.address, tc.want, got)
		}
	}
}

func TestAssembleContext_Empty(t *testing.T) {
	if got := AssembleContext(nil); got != "" {
		t.Fatalf("expected empty context block, got %q", got)
	}
}

func TestAssembleContext_MetadataAndBareCandidates(t *testing.T) {
	candidates := []models.RetrievedCandidate{
		{
			SectionID:      1,
			EmailID:        10,
			SectionContent: "Abubakr wants to live in Lahore",
			Similarity:     0.9,
			Metadata: &models.EmailMeta{
				ID:        10,
				Subject:   "Moving plans",
				Sender:    "abubakr.mohammed2508@gmail.com",
				Recipient: []string{"umar11@gmail.com", "abuzar18@gmail.com"},
			},
		},
		{
			SectionID:      2,
			EmailID:        20,
			SectionContent: "See you on Friday",
			Similarity:     0.7,
		},
	}

	block := AssembleContext(candidates)

	first := strings.Index(block, "EMAIL 1:")
	second := strings.Index(block, "EMAIL 2:")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("expected EMAIL 1 before EMAIL 2, got:\n%s", block)
	}

	record1 := block[:second]
	if !strings.Contains(record1, "SENDER: abubakr.mohammed2508@gmail.com (abubakr)") {
		t.Errorf("expected sender line with extracted name, got:\n%s", record1)
	}
	if !strings.Contains(record1, "TO: umar11@gmail.com, abuzar18@gmail.com") {
		t.Errorf("expected joined recipient line, got:\n%s", record1)
	}
	if !strings.Contains(record1, "SUBJECT: Moving plans") {
		t.Errorf("expected subject line, got:\n%s", record1)
	}
	if !strings.Contains(record1, "CONTENT: Abubakr wants to live in Lahore") {
		t.Errorf("expected content line, got:\n%s", record1)
	}

	record2 := block[second:]
	if strings.Contains(record2, "SENDER") || strings.Contains(record2, "SUBJECT") {
		t.Errorf("expected metadata-less record with index and content only, got:\n%s", record2)
	}
	if !strings.Contains(record2, "CONTENT: See you on Friday") {
		t.Errorf("expected content in second record, got:\n%s", record2)
	}

	if !strings.Contains(block, models.ContextSeparator) {
		t.Errorf("expected records joined by the fixed separator")
	}
}
