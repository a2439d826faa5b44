package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// DB remembers the last-seen schema fingerprint per schema root so validate
// can point out drift since the previous run.
type DB struct {
	// Schema root (absolute path or glob) -> fingerprint (xxhash hex)
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	return filepath.Join(root, ".wirecache.json")
}

// Load reads the cache under root, returning an empty DB when absent.
func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

// Save writes the cache under root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(p, b, 0644)
}
