package rag

import (
	"fmt"
	"strings"
	"unicode"

	"email-rag/internal/models"
)

// NameFromAddress extracts a best-effort display name from an email
// address: the part before the @, cut at the first dot, digits stripped.
// Display aid only, never an identity guarantee.
func NameFromAddress(address string) string {
	if address == "" {
		return ""
	}
	local := address
	if at := strings.Index(local, "@"); at >= 0 {
		local = local[:at]
	}
	if dot := strings.Index(local, "."); dot >= 0 {
		local = local[:dot]
	}
	var b strings.Builder
	for _, r := range local {
		if !unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AssembleContext renders ranked candidates into the text block handed to
// the generation model. Candidates without metadata render with only their
// index and content. Empty input renders an empty block.
func AssembleContext(candidates []models.RetrievedCandidate) string {
	records := make([]string, len(candidates))
	for i, c := range candidates {
		records[i] = renderCandidate(i+1, c)
	}
	return strings.Join(records, models.ContextSeparator)
}

func renderCandidate(index int, c models.RetrievedCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "EMAIL %d:", index)

	if meta := c.Metadata; meta != nil {
		if meta.Sender != "" {
			b.WriteString("\n📧 SENDER: " + meta.Sender)
			if name := NameFromAddress(meta.Sender); name != "" {
				b.WriteString(" (" + name + ")")
			}
		}
		if len(meta.Recipient) > 0 {
			b.WriteString("\n📬 TO: " + strings.Join(meta.Recipient, ", "))
		}
		if meta.Subject != "" {
			b.WriteString("\n📝 SUBJECT: " + meta.Subject)
		}
	}

	b.WriteString("\n\n💬 CONTENT: " + c.SectionContent)
	return b.String()
}
