// Package storage persists result assets: uploaded images and the JSON
// result documents written alongside them. The portal core never touches
// this package directly; services call it as a best-effort collaborator.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes result assets. The local implementation is always
// available; an S3 mirror can wrap it when a bucket is configured.
type Store interface {
	SaveUpload(ctx context.Context, filename string, body io.Reader) (string, error)
	SaveResultDoc(ctx context.Context, baseName string, data []byte) (string, error)
}

// LocalStore writes assets under a results directory on disk.
type LocalStore struct {
	resultsDir string
}

// NewLocalStore creates the results directory if needed.
func NewLocalStore(resultsDir string) (*LocalStore, error) {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &LocalStore{resultsDir: resultsDir}, nil
}

// SaveUpload writes an uploaded image under a timestamped name and
// returns its path.
func (s *LocalStore) SaveUpload(ctx context.Context, filename string, body io.Reader) (string, error) {
	path := filepath.Join(s.resultsDir, timestampedName(filename, filepath.Ext(filename)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// SaveResultDoc writes a JSON result document next to its image.
func (s *LocalStore) SaveResultDoc(ctx context.Context, baseName string, data []byte) (string, error) {
	path := filepath.Join(s.resultsDir, timestampedName(baseName, ".json"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func timestampedName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)
}

// EnsureSampleData makes sure the sample image directory exists. When it
// holds no images a placeholder file is written so the tutorial's upload
// step has something to point at.
func EnsureSampleData(sampleDir string) error {
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("failed to create sample directory: %w", err)
	}

	entries, err := os.ReadDir(sampleDir)
	if err != nil {
		return fmt.Errorf("failed to read sample directory: %w", err)
	}
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			return nil
		}
	}

	placeholder := filepath.Join(sampleDir, "PLACEHOLDER.txt")
	if err := os.WriteFile(placeholder, []byte("Please upload sample images for the tutorial.\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write sample placeholder: %w", err)
	}
	return nil
}
