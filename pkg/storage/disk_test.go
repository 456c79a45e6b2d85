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

func TestDiskUpload(t *testing.T) {
	store, err := NewDiskStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "reports/p1/scan.pdf", "application/pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/files/reports/p1/scan.pdf", url)

	data, err := os.ReadFile(filepath.Join(store.Root(), "reports", "p1", "scan.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestDiskUploadRejectsTraversal(t *testing.T) {
	store, err := NewDiskStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "../outside.txt", "text/plain", strings.NewReader("x"))
	require.Error(t, err)

	_, err = store.Upload(context.Background(), "/etc/passwd", "text/plain", strings.NewReader("x"))
	require.Error(t, err)
}
