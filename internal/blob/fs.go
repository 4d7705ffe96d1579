package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"linguadir/pkg/platform/sentinel"
)

// FS stores blobs as files under a directory, with a sidecar file per blob
// carrying the content type.
type FS struct {
	dir     string
	baseURL string
}

// NewFS creates the directory if needed and returns a filesystem store.
func NewFS(dir, baseURL string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &FS{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *FS) Put(_ context.Context, data []byte, contentType string) (string, error) {
	ref := uuid.NewString()
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o640); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, ref+".ct"), []byte(contentType), 0o640); err != nil {
		return "", fmt.Errorf("write blob content type: %w", err)
	}
	return ref, nil
}

func (s *FS) Get(_ context.Context, ref string) ([]byte, string, error) {
	// Refs are uuids we issued; anything with a separator is hostile input.
	if ref == "" || strings.ContainsAny(ref, "/\\.") {
		return nil, "", sentinel.ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", sentinel.ErrNotFound
		}
		return nil, "", fmt.Errorf("read blob: %w", err)
	}
	contentType, err := os.ReadFile(filepath.Join(s.dir, ref+".ct"))
	if err != nil {
		return nil, "", fmt.Errorf("read blob content type: %w", err)
	}
	return data, string(contentType), nil
}

func (s *FS) URL(ref string) string {
	return s.baseURL + "/blobs/" + ref
}
