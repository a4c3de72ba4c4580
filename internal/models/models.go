package models

import "github.com/uptrace/bun"

// Email is a stored email. The id is assigned by the database on insert and
// the row is never updated afterwards.
type Email struct {
	bun.BaseModel `bun:"table:emails,alias:e"`

	ID        int64    `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Subject   string   `bun:"subject,notnull" json:"subject"`
	Sender    string   `bun:"sender,notnull" json:"sender"`
	Recipient []string `bun:"recipient,array" json:"recipient"`
	CC        []string `bun:"cc,array" json:"cc,omitempty"`
	BCC       []string `bun:"bcc,array" json:"bcc,omitempty"`
	Body      string   `bun:"body,notnull" json:"body"`
}

// EmailSection is one embedded chunk of an email body. section_order is a
// contiguous 1-based sequence per email; concatenating sections in order
// reproduces the body modulo whitespace normalization at split points.
type EmailSection struct {
	bun.BaseModel `bun:"table:email_sections,alias:s"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	EmailID        int64     `bun:"email_id,notnull" json:"email_id"`
	SectionContent string    `bun:"section_content,notnull" json:"section_content"`
	Embedding      []float32 `bun:"embedding,notnull,type:vector(768)" json:"-"`
	SectionOrder   int       `bun:"section_order,notnull" json:"section_order"`
}

// SectionMatch is a similarity-search row as the store returns it,
// already ranked store-side.
type SectionMatch struct {
	ID             int64   `bun:"id"`
	EmailID        int64   `bun:"email_id"`
	SectionContent string  `bun:"section_content"`
	Similarity     float64 `bun:"similarity"`
}

// EmailMeta is the metadata subset fetched for retrieved sections.
type EmailMeta struct {
	bun.BaseModel `bun:"table:emails,alias:e"`

	ID        int64    `bun:"id"`
	Subject   string   `bun:"subject"`
	Sender    string   `bun:"sender"`
	Recipient []string `bun:"recipient,array"`
}

// RetrievedCandidate fuses a section match with its email's metadata.
// Built per question, never persisted. Metadata is nil when the owning
// email row could not be fetched.
type RetrievedCandidate struct {
	SectionID      int64
	EmailID        int64
	SectionContent string
	Similarity     float64
	Metadata       *EmailMeta
}
