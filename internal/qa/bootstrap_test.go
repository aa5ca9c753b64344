package qa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitabqa/internal/config"
)

func TestCheckStatus(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.AppConfig{}
	cfg.Document.IndexDir = filepath.Join(dir, "index")
	docPath := filepath.Join(dir, "book.pdf")

	status := CheckStatus(cfg, docPath)
	assert.False(t, status.DocumentPresent)
	assert.False(t, status.IndexPresent)
	assert.Equal(t, docPath, status.DocumentPath)
	assert.Equal(t, cfg.Document.IndexDir, status.IndexDir)

	require.NoError(t, os.WriteFile(docPath, []byte("pdf"), 0o644))
	require.NoError(t, os.MkdirAll(cfg.Document.IndexDir, 0o755))
	require.NoError(t, os.WriteFile(cfg.Document.IndexFile(), []byte("idx"), 0o644))

	// one artifact without its sibling still counts as absent
	status = CheckStatus(cfg, docPath)
	assert.True(t, status.DocumentPresent)
	assert.False(t, status.IndexPresent)

	require.NoError(t, os.WriteFile(cfg.Document.MetaFile(), []byte("{}"), 0o644))
	status = CheckStatus(cfg, docPath)
	assert.True(t, status.IndexPresent)
}
