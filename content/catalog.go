// Package content maintains the catalog of content packages (saves, DLC,
// title updates) visible to guest content enumeration.
package content

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	_ "modernc.org/sqlite"
)

// Canonical mode keeps metadata encoding deterministic.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("content: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Entry describes one content package.
type Entry struct {
	DeviceID    uint32
	ContentType uint32
	DisplayName string
	FileName    string

	// Meta carries host-side package attributes that never cross the
	// guest boundary (source path, install time, and so on).
	Meta map[string]string
}

// Catalog is the sqlite-backed content index. The default DSN is
// ":memory:", which keeps the catalog a per-process index rather than
// persisted emulator state.
type Catalog struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (and if needed bootstraps) a catalog at the given DSN.
func Open(dsn string) (*Catalog, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("content: opening catalog: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("content: setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_id INTEGER NOT NULL,
		content_type INTEGER NOT NULL,
		display_name TEXT NOT NULL,
		file_name TEXT NOT NULL,
		meta BLOB
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("content: creating entries table: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Add inserts an entry into the catalog.
func (c *Catalog) Add(e Entry) error {
	var meta []byte
	if len(e.Meta) != 0 {
		var err error
		meta, err = cborEncMode.Marshal(e.Meta)
		if err != nil {
			return fmt.Errorf("content: encoding entry metadata: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(
		"INSERT INTO entries (device_id, content_type, display_name, file_name, meta) VALUES (?, ?, ?, ?, ?)",
		e.DeviceID, e.ContentType, e.DisplayName, e.FileName, meta,
	)
	if err != nil {
		return fmt.Errorf("content: adding entry: %w", err)
	}
	return nil
}

// List returns all entries of the given content type in insertion order.
func (c *Catalog) List(contentType uint32) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(
		"SELECT device_id, content_type, display_name, file_name, meta FROM entries WHERE content_type = ? ORDER BY id",
		contentType,
	)
	if err != nil {
		return nil, fmt.Errorf("content: querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var meta []byte
		if err := rows.Scan(&e.DeviceID, &e.ContentType, &e.DisplayName, &e.FileName, &meta); err != nil {
			return nil, fmt.Errorf("content: scanning entry: %w", err)
		}
		if len(meta) != 0 {
			if err := cbor.Unmarshal(meta, &e.Meta); err != nil {
				return nil, fmt.Errorf("content: decoding entry metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("content: iterating entries: %w", err)
	}
	return entries, nil
}

// Count returns the total number of catalog entries.
func (c *Catalog) Count() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("content: counting entries: %w", err)
	}
	return n, nil
}
