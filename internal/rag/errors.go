package rag

import (
	"fmt"
	"strings"
)

// FieldViolation names a single invalid email field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError rejects a malformed inbound email. Nothing is persisted
// when validation fails.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Reason
	}
	return "invalid email: " + strings.Join(parts, "; ")
}

// PersistenceError reports a rejected store write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ChunkProcessingError marks which chunk of an ingest failed. Sections
// persisted before Index stay in the store.
type ChunkProcessingError struct {
	Index int // 1-based, matches section_order
	Err   error
}

func (e *ChunkProcessingError) Error() string {
	return fmt.Sprintf("processing chunk %d failed: %v", e.Index, e.Err)
}

func (e *ChunkProcessingError) Unwrap() error { return e.Err }

// RetrievalError reports a failed vector store query. An empty match set
// is not an error.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
