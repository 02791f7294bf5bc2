package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdugdh24/campus-match/internal/domain"
)

// Document is the whole persisted state. Each collection keeps insertion order.
type Document struct {
	Users    []*userRecord     `json:"users"`
	Swipes   []*domain.Swipe   `json:"swipes"`
	Matches  []*domain.Match   `json:"matches"`
	Messages []*domain.Message `json:"messages"`
}

// userRecord stores the password hash under "password", which domain.User
// hides from API responses.
type userRecord struct {
	domain.User
	PasswordHash string `json:"password"`
}

func newUserRecord(u *domain.User) *userRecord {
	return &userRecord{User: *u, PasswordHash: u.PasswordHash}
}

func (r *userRecord) toDomain() *domain.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	if u.Interests == nil {
		u.Interests = []string{}
	}
	return &u
}

// Store is a single JSON file guarded by a single-writer lock. Every call
// re-reads the file; Update writes the whole document back atomically.
type Store struct {
	path string
	mu   sync.RWMutex
}

// Open creates the document (and its directory) if it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.save(&Document{}); err != nil {
			return nil, fmt.Errorf("failed to initialize document: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	return s, nil
}

// Path returns the location of the document on disk.
func (s *Store) Path() string {
	return s.path
}

// View runs fn against a freshly loaded document without saving it.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs a load, mutate, save cycle under the writer lock. Nothing is
// written when fn returns an error.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc Document
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
	}
	return &doc, nil
}

func (s *Store) save(doc *Document) error {
	if doc.Users == nil {
		doc.Users = []*userRecord{}
	}
	if doc.Swipes == nil {
		doc.Swipes = []*domain.Swipe{}
	}
	if doc.Matches == nil {
		doc.Matches = []*domain.Match{}
	}
	if doc.Messages == nil {
		doc.Messages = []*domain.Message{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close document: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

// nextID returns a creation-time id strictly greater than last.
func nextID(last int64) int64 {
	now := time.Now().UnixMilli()
	if now <= last {
		return last + 1
	}
	return now
}
