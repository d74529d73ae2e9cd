// Package manifest tracks which input files a previous run already
// converted, so a resumed run can skip unchanged inputs.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// Entry records the outcome of converting one input file. Entries are keyed
// by the input's path relative to the input root.
type Entry struct {
	Size       int64  `json:"size"`
	ModTime    int64  `json:"mod_time"` // unix nanoseconds
	Rows       int    `json:"rows"`
	OutputPath string `json:"output_path"`
}

// Fresh reports whether the entry still matches the input file's current size
// and modification time.
func (e Entry) Fresh(size int64, modTime time.Time) bool {
	return e.Size == size && e.ModTime == modTime.UnixNano()
}

// Manifest is a pebble-backed store of conversion entries. Only the run
// coordinator touches it; workers never do.
type Manifest struct {
	db *pebble.DB
}

// Open opens (or creates) the manifest database at path.
func Open(path string) (*Manifest, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	return &Manifest{db: db}, nil
}

// Lookup fetches the entry for a relative input path. The second return is
// false when no entry exists.
func (m *Manifest) Lookup(relPath string) (Entry, bool, error) {
	data, closer, err := m.db.Get([]byte(relPath))
	if errors.Is(err, pebble.ErrNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	defer closer.Close()

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("manifest entry %s: %w", relPath, err)
	}
	return e, true, nil
}

// Record stores the entry for a relative input path, replacing any previous
// one.
func (m *Manifest) Record(relPath string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return m.db.Set([]byte(relPath), data, pebble.NoSync)
}

// Close closes the underlying database.
func (m *Manifest) Close() error {
	return m.db.Close()
}
