package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueName(t *testing.T) {
	a := UniqueName("cv", "resume.pdf")
	b := UniqueName("cv", "resume.pdf")

	assert.True(t, strings.HasPrefix(a, "cv-"))
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.NotEqual(t, a, b)
}

func TestDiskStorage_Save(t *testing.T) {
	dir := t.TempDir()

	store, err := NewDiskStorage(dir, "/uploads")
	assert.NoError(t, err)

	url, err := store.Save("cv-test.pdf", strings.NewReader("%PDF-1.4 test"))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/cv-test.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "cv-test.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestNewDiskStorage_createsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewDiskStorage(dir, "/uploads")
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
