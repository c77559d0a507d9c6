package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUpload(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.SaveUpload(context.Background(), "road.jpg", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "road_"))
	assert.True(t, strings.HasSuffix(base, ".jpg"))
}

func TestSaveUploadStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	path, err := store.SaveUpload(context.Background(), "../../etc/passwd.png", strings.NewReader("x"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
}

func TestSaveResultDoc(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.SaveResultDoc(context.Background(), "road.jpg", []byte(`{"detections":[]}`))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, ".json"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"detections":[]}`, string(data))
}

func TestEnsureSampleDataWritesPlaceholder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "samples")

	require.NoError(t, EnsureSampleData(dir))

	_, err := os.Stat(filepath.Join(dir, "PLACEHOLDER.txt"))
	assert.NoError(t, err)
}

func TestEnsureSampleDataKeepsExistingImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.JPG"), []byte("img"), 0o644))

	require.NoError(t, EnsureSampleData(dir))

	_, err := os.Stat(filepath.Join(dir, "PLACEHOLDER.txt"))
	assert.True(t, os.IsNotExist(err))
}
