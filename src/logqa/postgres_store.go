package logqa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements VectorStore using Postgres with the pgvector
// extension. Chunks are ordered by vector distance at query time.
type PostgresStore struct {
	DB *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and ensures the schema exists.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	store := &PostgresStore{DB: db}
	if err := store.createSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (ps *PostgresStore) createSchema(ctx context.Context) error {
	_, err := ps.DB.Exec(ctx, `
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS log_chunks (
			id BIGSERIAL PRIMARY KEY,
			source TEXT NOT NULL,
			chunk_index INT NOT NULL,
			content TEXT NOT NULL,
			embedding vector
		);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Add(ctx context.Context, chunks []Chunk) error {
	for _, c := range chunks {
		_, err := ps.DB.Exec(ctx, `
			INSERT INTO log_chunks (source, chunk_index, content, embedding)
			VALUES ($1, $2, $3, $4::vector);
		`, c.Source, c.Index, c.Text, vectorLiteral(c.Embedding))
		if err != nil {
			return fmt.Errorf("insert chunk %s/%d: %w", c.Source, c.Index, err)
		}
	}
	return nil
}

func (ps *PostgresStore) Search(ctx context.Context, embedding []float32, limit int) ([]Chunk, error) {
	rows, err := ps.DB.Query(ctx, `
		SELECT source, chunk_index, content, (embedding <-> $1::vector) AS distance
		FROM log_chunks
		ORDER BY embedding <-> $1::vector
		LIMIT $2;
	`, vectorLiteral(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		var distance float64
		if err := rows.Scan(&c.Source, &c.Index, &c.Text, &distance); err != nil {
			return nil, err
		}
		c.Score = -distance
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func (ps *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := ps.DB.QueryRow(ctx, `SELECT COUNT(*) FROM log_chunks;`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (ps *PostgresStore) Reset(ctx context.Context) error {
	_, err := ps.DB.Exec(ctx, `TRUNCATE log_chunks;`)
	return err
}

// Close releases the underlying connection pool.
func (ps *PostgresStore) Close() {
	if ps != nil && ps.DB != nil {
		ps.DB.Close()
	}
}

func vectorLiteral(embedding []float32) string {
	jsonEmbed, _ := json.Marshal(embedding)
	return fmt.Sprintf("[%s]", strings.Trim(string(jsonEmbed), "[]"))
}

var _ VectorStore = (*PostgresStore)(nil)
