package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/config"
)

func TestSnapshotChanged(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("cat    gato\n"), 0o644))

	snap := takeSnapshot(ctx, []string{first})

	changed, err := snap.changed(ctx, []string{first})
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(second, []byte("dog    perro\n"), 0o644))
	changed, err = snap.changed(ctx, []string{first, second})
	require.NoError(t, err)
	assert.True(t, changed, "a new file is a change")

	require.NoError(t, os.WriteFile(first, []byte("cat    el gato\n"), 0o644))
	changed, err = snap.changed(ctx, []string{first})
	require.NoError(t, err)
	assert.True(t, changed, "new content is a change")

	snap = takeSnapshot(ctx, []string{first, second})
	changed, err = snap.changed(ctx, []string{first})
	require.NoError(t, err)
	assert.True(t, changed, "a removed file is a change")
}

func TestWatchRoots(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "notes")
	require.NoError(t, os.Mkdir(sub, 0o755))
	file := filepath.Join(sub, "deck.md")
	require.NoError(t, os.WriteFile(file, []byte("1. one\n"), 0o644))

	assert.Equal(t, []string{dir}, watchRoots(nil, dir))
	assert.Equal(t, []string{sub}, watchRoots([]string{"notes/deck.md", "notes"}, dir))
	assert.Equal(t, []string{sub, dir}, watchRoots([]string{file, "."}, dir))
}

func TestConvertSessionRelevant(t *testing.T) {
	cfg := config.NewConfig()
	s := &convertSession{cfg: cfg, outputPath: "/work/deck.txt"}

	assert.True(t, s.relevant("/work/notes.md"))
	assert.True(t, s.relevant("/work/page.HTML"))
	assert.False(t, s.relevant("/work/deck.txt"))
	assert.False(t, s.relevant("/work/deck.txt.bak"))
	assert.False(t, s.relevant("/work/image.png"))
}
