package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

// CSVWriter writes post snapshots to a CSV file. Safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"post_id", "title", "category", "rent_price", "total_slot", "current_slot",
		"address", "rating", "approve_status", "fetched_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the snapshots to the CSV file.
func (c *CSVWriter) Write(snaps []*models.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sn := range snaps {
		row := []string{
			sn.PostID,
			sn.Title,
			sn.Category,
			strconv.FormatFloat(sn.RentPrice, 'f', 2, 64),
			strconv.Itoa(sn.TotalSlot),
			strconv.Itoa(sn.CurrentSlot),
			sn.Address,
			strconv.FormatFloat(sn.Rating, 'f', 2, 64),
			sn.Approve,
			sn.FetchedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
