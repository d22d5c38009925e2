package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

// PostgresWriter caches post snapshots in PostgreSQL so the market
// report can run without hitting the backend again.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, creates the cache
// table if needed, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS post_snapshots (
			id             SERIAL PRIMARY KEY,
			post_id        TEXT          UNIQUE NOT NULL,
			title          TEXT          NOT NULL,
			category       VARCHAR(20)   NOT NULL,
			rent_price     NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_slot     INT           NOT NULL DEFAULT 0,
			current_slot   INT           NOT NULL DEFAULT 0,
			address        TEXT          NOT NULL DEFAULT '',
			rating         NUMERIC(4,2)  NOT NULL DEFAULT 0,
			approve_status VARCHAR(20)   NOT NULL DEFAULT '',
			fetched_at     TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_rent     ON post_snapshots(rent_price);
		CREATE INDEX IF NOT EXISTS idx_snapshots_address  ON post_snapshots(address);
		CREATE INDEX IF NOT EXISTS idx_snapshots_category ON post_snapshots(category);
	`)
	return err
}

// Clear deletes all cached snapshots.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM post_snapshots")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the cache with the given snapshots, batched.
func (pw *PostgresWriter) Write(snaps []*models.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(snaps); i += batchSize {
		end := i + batchSize
		if end > len(snaps) {
			end = len(snaps)
		}
		if err := pw.insertBatch(snaps[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Snapshot) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, sn := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			sn.PostID, sn.Title, sn.Category, sn.RentPrice, sn.TotalSlot,
			sn.CurrentSlot, sn.Address, sn.Rating, sn.Approve)
	}

	query := fmt.Sprintf(`
		INSERT INTO post_snapshots (post_id, title, category, rent_price, total_slot, current_slot, address, rating, approve_status)
		VALUES %s
		ON CONFLICT (post_id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all cached snapshots, for the offline market report.
func (pw *PostgresWriter) FetchAll() ([]*models.Snapshot, error) {
	rows, err := pw.db.Query(`
		SELECT id, post_id, title, category, rent_price, total_slot, current_slot, address, rating, approve_status, fetched_at
		FROM post_snapshots
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var snaps []*models.Snapshot
	for rows.Next() {
		sn := &models.Snapshot{}
		if err := rows.Scan(
			&sn.ID, &sn.PostID, &sn.Title, &sn.Category, &sn.RentPrice,
			&sn.TotalSlot, &sn.CurrentSlot, &sn.Address, &sn.Rating,
			&sn.Approve, &sn.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		snaps = append(snaps, sn)
	}
	return snaps, rows.Err()
}
