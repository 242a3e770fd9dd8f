package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAssetPath(t *testing.T) {
	path := GenerateAssetPath("assets")

	assert.Equal(t, "assets", filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "asset_"))
	assert.True(t, IsAssetFile(path))
}

func TestIsAssetFile(t *testing.T) {
	assert.True(t, IsAssetFile("a.yaml"))
	assert.True(t, IsAssetFile("a.YML"))
	assert.True(t, IsAssetFile("a.json"))
	assert.False(t, IsAssetFile("a.txt"))
	assert.False(t, IsAssetFile("yaml"))
}

func TestFindLatestAsset(t *testing.T) {
	dir := t.TempDir()

	_, err := FindLatestAsset(dir)
	assert.Error(t, err)

	now := time.Now()
	files := map[string]time.Time{
		"old.yaml":  now.Add(-2 * time.Hour),
		"new.json":  now.Add(-time.Hour),
		"notes.txt": now,
	}
	for name, mtime := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755))

	latest, err := FindLatestAsset(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.json"), latest)

	_, err = FindLatestAsset(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSplitCamelCase(t *testing.T) {
	tests := map[string]string{
		"PlayAnimation":     "Play Animation",
		"HTTPServer":        "HTTP Server",
		"already split":     "already split",
		"":                  "",
		"ActorGroup":        "Actor Group",
		"triggerEventTrack": "trigger Event Track",
	}
	for in, want := range tests {
		assert.Equal(t, want, SplitCamelCase(in), in)
	}
}
