// Package history records every successful drawing so an instructor can review
// what the class asked for and what the generator made of it.
package history

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
)

// Record is one successful draw.
type Record struct {
	SessionID   string `json:"session_id" yaml:"session_id" parquet:"session_id"`
	ClassID     string `json:"class_id" yaml:"class_id" parquet:"class_id"`
	Name        string `json:"name" yaml:"name" parquet:"name"`
	UserText    string `json:"user_text" yaml:"user_text" parquet:"user_text"`
	Prompt      string `json:"prompt" yaml:"prompt" parquet:"prompt"`
	Locator     string `json:"locator" yaml:"locator" parquet:"locator"`
	HasImage    bool   `json:"has_reference_image" yaml:"has_reference_image" parquet:"has_reference_image"`
	CreatedAtMS int64  `json:"created_at_ms" yaml:"created_at_ms" parquet:"created_at_ms"`
}

// CreatedAt returns the record timestamp.
func (r Record) CreatedAt() time.Time {
	return time.UnixMilli(r.CreatedAtMS)
}

// Log is an in-memory, append-only list of records.
type Log struct {
	mu      sync.RWMutex
	records []Record
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Add appends r, stamping it with the current time if unset.
func (l *Log) Add(r Record) {
	if r.CreatedAtMS == 0 {
		r.CreatedAtMS = time.Now().UnixMilli()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

// Records returns a copy of all records, optionally limited to one session.
func (l *Log) Records(sessionID string) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		if sessionID == "" || r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out
}

// WriteParquet encodes records as a parquet file onto w.
func WriteParquet(w io.Writer, records []Record) error {
	writer := parquet.NewGenericWriter[Record](w)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteFile writes records to path as parquet.
func WriteFile(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	if err := WriteParquet(file, records); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}
	slog.Info("Wrote drawing history", "path", path, "records", len(records))
	return nil
}

// ReadFile loads all records from a parquet history file.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var records []Record
	rows := make([]Record, 128)
	for {
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	slog.Debug("Read drawing history", "path", path, "records", len(records))
	return records, nil
}
