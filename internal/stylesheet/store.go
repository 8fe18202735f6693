package stylesheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageKey is the single key the user's stylesheet is stored under.
const StorageKey = "ytlcv2-custom-css"

// DefaultExportName is the file name suggested when exporting the stylesheet.
const DefaultExportName = "youtube-chat-widget.css"

// KV is the key-value storage the Store persists into.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store persists one stylesheet. Later saves overwrite earlier ones.
type Store struct {
	kv KV
}

// NewStore returns a Store backed by kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save writes text under StorageKey.
func (s *Store) Save(ctx context.Context, text string) error {
	if err := s.kv.Set(ctx, StorageKey, text); err != nil {
		return fmt.Errorf("failed to save stylesheet: %w", err)
	}
	return nil
}

// Load returns the last saved stylesheet, or DefaultTemplate when nothing has been saved.
func (s *Store) Load(ctx context.Context) (string, error) {
	text, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return DefaultTemplate, fmt.Errorf("failed to load stylesheet: %w", err)
	}
	if !found {
		return DefaultTemplate, nil
	}
	return text, nil
}

// HasSaved reports whether a stylesheet has been saved.
func (s *Store) HasSaved(ctx context.Context) (bool, error) {
	_, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return false, fmt.Errorf("failed to load stylesheet: %w", err)
	}
	return found, nil
}

// Reset returns DefaultTemplate. Nothing is persisted until the next Save.
func (s *Store) Reset() string {
	return DefaultTemplate
}

// ExportPath resolves where an export to path is written: a directory gets DefaultExportName appended.
func ExportPath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DefaultExportName)
	}
	return path
}

// Export writes text to ExportPath(path) and returns the file written.
func Export(path, text string) (string, error) {
	path = ExportPath(path)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to export stylesheet: %w", err)
	}
	return path, nil
}

// Import reads a stylesheet file as text. The content is accepted as-is.
func Import(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to import stylesheet: %w", err)
	}
	return string(data), nil
}
