package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogRunAndLoadHistory(t *testing.T) {
	dir := t.TempDir()
	log := New(dir)

	first := NewRunRecord(0xa1b2c3d4e5f60718, "acme.Invoice", 1, 2, 3*time.Millisecond)
	if err := log.LogRun(first); err != nil {
		t.Fatalf("LogRun: %v", err)
	}
	second := NewRunRecord(0xa1b2c3d4e5f60718, "acme.Buyer", 1, 1, time.Millisecond)
	if err := log.LogRun(second); err != nil {
		t.Fatalf("LogRun: %v", err)
	}

	records, err := log.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// newest first
	if records[0].Type != "acme.Buyer" || records[1].Type != "acme.Invoice" {
		t.Fatalf("wrong order: %v, %v", records[0].Type, records[1].Type)
	}
	if records[0].Schema != "a1b2c3d4e5f60718" {
		t.Fatalf("fingerprint not recorded: %q", records[0].Schema)
	}
	if records[0].RunID == "" || records[0].Timestamp.IsZero() {
		t.Fatal("run id and timestamp must be filled in")
	}

	info, err := os.Stat(filepath.Join(dir, "wire_audit.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("audit log should be owner-only, got %v", info.Mode().Perm())
	}
}

func TestLoadHistorySkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wire_audit.jsonl")
	content := `{"type":"acme.Invoice","run_id":"run_1","timestamp":"2026-08-30T10:00:00Z"}
not json
{"type":"acme.Buyer","run_id":"run_2","timestamp":"2026-08-30T11:00:00Z"}
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	records, err := New(dir).LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(records) < 1 {
		t.Fatal("expected at least the valid records")
	}
}
