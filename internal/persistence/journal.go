// Package persistence stores campaign state on disk: an append-only JSONL
// journal of processed commands plus per-character YAML sheets.
package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/graydelve/graydelve/internal/engine"
)

// Record is one journal line: the command that ran and what came of it.
type Record struct {
	At      time.Time          `json:"at"`
	Command engine.CommandType `json:"command"`
	Input   string             `json:"input,omitempty"`
	Result  *engine.Result     `json:"result"`
}

// Journal handles append-only storage of command records.
type Journal struct {
	file *os.File
}

// OpenJournal opens or creates the journal file at path for appending.
func OpenJournal(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}
	return &Journal{file: file}, nil
}

// Append marshals a record onto the journal. Each record is synced so a
// crash never loses an acknowledged command.
func (j *Journal) Append(rec Record) error {
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return j.file.Sync()
}

// Load replays every journal line back into records, oldest first.
func (j *Journal) Load() ([]Record, error) {
	if _, err := j.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var records []Record
	scanner := bufio.NewScanner(j.file)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode journal line: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Close handles safe shutdown.
func (j *Journal) Close() error {
	return j.file.Close()
}
