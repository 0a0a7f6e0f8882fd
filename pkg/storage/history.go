// Package storage persists prediction history in a relational
// database, when one is configured.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/app-sre/fabi/pkg/env/db"
	"github.com/app-sre/fabi/pkg/models"
)

// RecentLimit is the number of predictions listed by default.
const RecentLimit = 20

const (
	postgresSchema = `CREATE TABLE IF NOT EXISTS predictions (
	id VARCHAR(36) PRIMARY KEY,
	digest VARCHAR(64) NOT NULL,
	sequence TEXT NOT NULL,
	length INTEGER NOT NULL,
	mean_plddt DOUBLE PRECISION NOT NULL,
	structure TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`
	postgresIndex = `CREATE INDEX IF NOT EXISTS predictions_digest_idx ON predictions (digest)`

	mysqlSchema = `CREATE TABLE IF NOT EXISTS predictions (
	id VARCHAR(36) PRIMARY KEY,
	digest VARCHAR(64) NOT NULL,
	sequence TEXT NOT NULL,
	length INT NOT NULL,
	mean_plddt DOUBLE NOT NULL,
	structure MEDIUMTEXT NOT NULL,
	created_at DATETIME NOT NULL,
	INDEX predictions_digest_idx (digest)
)`
)

// History stores completed predictions. Queries are written with ?
// placeholders and rewritten for PostgreSQL as needed.
type History struct {
	db     *sql.DB
	driver db.DriverType
}

func NewHistory(db *sql.DB, driver db.DriverType) *History {
	return &History{db: db, driver: driver}
}

// EnsureSchema creates the prediction history schema unless it already
// exists.
func (h *History) EnsureSchema(ctx context.Context) error {
	statements := []string{postgresSchema, postgresIndex}
	if h.driver.Name() == "mysql" {
		statements = []string{mysqlSchema}
	}

	for _, statement := range statements {
		if _, err := h.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("unable to create prediction history schema: %w", err)
		}
	}

	return nil
}

// Record stores a completed prediction along with its structure.
func (h *History) Record(ctx context.Context, record *models.PredictionRecord, structure string) error {
	query := h.rebind(`INSERT INTO predictions (id, digest, sequence, length, mean_plddt, structure, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := h.db.ExecContext(ctx, query,
		record.ID, record.Digest, record.Sequence, record.Length, record.MeanPLDDT, structure, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("unable to record prediction: %w", err)
	}

	return nil
}

// Recent returns the newest predictions, without their structures.
func (h *History) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if limit < 1 {
		limit = RecentLimit
	}

	query := h.rebind(`SELECT id, digest, sequence, length, mean_plddt, created_at FROM predictions ORDER BY created_at DESC LIMIT ?`)

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to list predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.PredictionRecord

	for rows.Next() {
		var record models.PredictionRecord

		err = rows.Scan(&record.ID, &record.Digest, &record.Sequence, &record.Length, &record.MeanPLDDT, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("unable to scan prediction: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to list predictions: %w", err)
	}

	return records, nil
}

// Get returns a single prediction, without its structure.
func (h *History) Get(ctx context.Context, id string) (*models.PredictionRecord, error) {
	query := h.rebind(`SELECT id, digest, sequence, length, mean_plddt, created_at FROM predictions WHERE id = ?`)

	var record models.PredictionRecord

	err := h.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.Digest, &record.Sequence, &record.Length, &record.MeanPLDDT, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("unable to select prediction: %w", err)
	}

	return &record, nil
}

// PDB returns the stored structure of a prediction.
func (h *History) PDB(ctx context.Context, id string) (string, error) {
	query := h.rebind(`SELECT structure FROM predictions WHERE id = ?`)

	var structure string

	err := h.db.QueryRowContext(ctx, query, id).Scan(&structure)
	if err != nil {
		return "", fmt.Errorf("unable to select prediction structure: %w", err)
	}

	return structure, nil
}

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
func (h *History) rebind(query string) string {
	if h.driver.Name() == "mysql" {
		return query
	}

	var b strings.Builder

	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}

		n++
		fmt.Fprintf(&b, "$%d", n)
	}

	return b.String()
}
