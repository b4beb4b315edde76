package session

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Entry is the remembered state of the last successful generation for one
// workspace root.
type Entry struct {
	Root      string    `json:"root"`
	Document  string    `json:"document"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store provides file-based persistence for generation sessions.
type Store struct {
	dir     string
	enabled bool
}

// New creates a Store. If dir is empty, the default cache directory is used.
func New(enabled bool, dir string) (*Store, error) {
	if !enabled {
		return &Store{enabled: false}, nil
	}
	if dir == "" {
		d, err := defaultSessionDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &Store{dir: dir, enabled: true}, nil
}

// Enabled returns whether persistence is active.
func (s *Store) Enabled() bool { return s.enabled }

// Dir returns the session directory path.
func (s *Store) Dir() string { return s.dir }

// Get retrieves the entry for a workspace root. Returns (zero, false) when
// no usable entry exists.
func (s *Store) Get(root string) (Entry, bool) {
	if !s.enabled {
		return Entry{}, false
	}
	data, err := os.ReadFile(s.entryPath(root))
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}

// Put stores the latest document/message pair for a workspace root.
func (s *Store) Put(root, document, message string) error {
	if !s.enabled {
		return nil
	}
	entry := Entry{
		Root:      root,
		Document:  document,
		Message:   message,
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling session entry: %w", err)
	}
	return os.WriteFile(s.entryPath(root), data, 0o644)
}

// Clear removes all session entries.
func (s *Store) Clear() error {
	if !s.enabled || s.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading session directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	return nil
}

// Stats summarizes what the store currently holds.
type Stats struct {
	Dir     string `json:"dir"`
	Entries int    `json:"entries"`
}

// GetStats returns information about the store.
func (s *Store) GetStats() (Stats, error) {
	stats := Stats{Dir: s.dir}
	if !s.enabled || s.dir == "" {
		return stats, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading session directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			stats.Entries++
		}
	}
	return stats, nil
}

func (s *Store) entryPath(root string) string {
	h := sha256.Sum256([]byte(root))
	return filepath.Join(s.dir, fmt.Sprintf("%x.json", h))
}

func defaultSessionDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "comet"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "comet"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "comet", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "comet", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "comet"), nil
	}
}
