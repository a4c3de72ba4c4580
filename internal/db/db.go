package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"email-rag/internal/config"
	"email-rag/internal/models"
)

// ConnectDB opens the Supabase Postgres connection through pgdriver.
func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.SupabaseURL + "?sslmode=disable"
	return sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithPassword(cfg.SupabaseKey),
	)), nil
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

// Store is the Supabase-backed implementation of the rag.Store contract.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// InitSchema creates the pgvector extension and both tables. Idempotent.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return err
	}
	if _, err := s.db.NewCreateTable().Model((*models.Email)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	if _, err := s.db.NewCreateTable().Model((*models.EmailSection)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Store) InsertEmail(ctx context.Context, email *models.Email) (int64, error) {
	if _, err := s.db.NewInsert().Model(email).Exec(ctx); err != nil {
		return 0, err
	}
	return email.ID, nil
}

func (s *Store) InsertSection(ctx context.Context, section *models.EmailSection) error {
	_, err := s.db.NewInsert().Model(section).Exec(ctx)
	return err
}

// SearchSimilar ranks sections by cosine similarity to the query embedding,
// keeping only rows at or above the threshold. The store does the ranking;
// it may return fewer than limit rows.
func (s *Store) SearchSimilar(ctx context.Context, queryEmbedding []float32, threshold float64, limit int) ([]models.SectionMatch, error) {
	qvec := vectorLiteral(queryEmbedding)

	var matches []models.SectionMatch
	err := s.db.NewSelect().
		TableExpr("email_sections AS s").
		ColumnExpr("s.id, s.email_id, s.section_content").
		ColumnExpr("1 - (s.embedding <=> ?::vector) AS similarity", qvec).
		Where("1 - (s.embedding <=> ?::vector) >= ?", qvec, threshold).
		OrderExpr("s.embedding <=> ?::vector", qvec).
		Limit(limit).
		Scan(ctx, &matches)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Store) GetEmailsByIDs(ctx context.Context, ids []int64) ([]models.EmailMeta, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var metas []models.EmailMeta
	err := s.db.NewSelect().
		Model(&metas).
		Column("id", "subject", "sender", "recipient").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return metas, nil
}

// vectorLiteral renders an embedding as a pgvector literal, e.g. [0.1,0.2].
func vectorLiteral(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
