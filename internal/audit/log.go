package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunRecord describes one redaction run. Field values are never recorded,
// only counts; the audit log must not become a second copy of the data it
// exists to protect.
type RunRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	RunID         string    `json:"run_id"`
	Schema        string    `json:"schema"` // schema fingerprint, hex
	Type          string    `json:"type"`   // qualified root message type
	Messages      int       `json:"messages"`
	FieldsCleared int       `json:"fields_cleared"`
	Duration      string    `json:"duration"`
}

// Log appends redaction run records to a JSONL file.
type Log struct {
	logPath string
}

// New returns a Log writing under dir.
func New(dir string) *Log {
	return &Log{logPath: filepath.Join(dir, "wire_audit.jsonl")}
}

// LoadHistory returns recorded runs, newest first. Corrupt lines are skipped.
func (a *Log) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record RunRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogRun appends one record. Owner-only permissions: the log names which
// types carry redacted data.
func (a *Log) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().Unix())
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// NewRunRecord assembles a record for one completed redaction run.
func NewRunRecord(fingerprint uint64, typeName string, messages, fieldsCleared int, duration time.Duration) RunRecord {
	return RunRecord{
		Timestamp:     time.Now(),
		Schema:        fmt.Sprintf("%016x", fingerprint),
		Type:          typeName,
		Messages:      messages,
		FieldsCleared: fieldsCleared,
		Duration:      duration.String(),
	}
}
