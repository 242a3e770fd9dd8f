package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/actiondirector/internal/actions"
	"github.com/ivlev/actiondirector/internal/config"
	"github.com/ivlev/actiondirector/internal/director"
)

func writeScene(t *testing.T, dir, name string, overlap bool) string {
	t.Helper()
	a := actions.NewAsset()
	g := a.AddGroup(actions.ActorGroup, name)
	track := g.AddTrack(actions.AnimationTrack, "")
	require.NotNil(t, track.AddClip(actions.MoveTo, 0))
	if overlap {
		require.NotNil(t, track.AddClip(actions.MoveTo, 1))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, director.WriteAsset(a, path))
	return path
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeScene(t, dir, "a.yaml", false),
		writeScene(t, dir, "b.json", true),
		writeScene(t, dir, "c.yaml", false),
	}
	cfg := config.Default()
	cfg.Workers = 2

	reports, err := ValidateFiles(context.Background(), cfg, actions.NewRegistry(), paths)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	for i, r := range reports {
		assert.Equal(t, paths[i], r.Path, "reports keep input order")
	}
	assert.True(t, reports[0].OK())
	assert.False(t, reports[1].OK())
	assert.Len(t, reports[1].Findings, 2)
	assert.Equal(t, 2.0, reports[0].Asset.Length())

	var out bytes.Buffer
	failed := PrintReports(&out, reports)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "[*] Files: 3 | Passed: 2 | Failed: 1")
}

func TestValidateFiles_DecodeErrorStopsBatch(t *testing.T) {
	dir := t.TempDir()
	good := writeScene(t, dir, "good.yaml", false)
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{broken"), 0644))

	_, err := ValidateFiles(context.Background(), nil, actions.NewRegistry(), []string{good, bad})
	assert.ErrorContains(t, err, "bad.json")
}

func TestValidateFiles_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "a.yaml", false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ValidateFiles(ctx, config.Default(), actions.NewRegistry(), []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "b.yaml", false)
	writeScene(t, dir, "a.json", false)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	extra := writeScene(t, t.TempDir(), "x.yml", false)

	files, err := CollectFiles([]string{dir, extra})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.yaml"), extra}, files)

	_, err = CollectFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}
