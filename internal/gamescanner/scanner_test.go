package gamescanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var files = Files{Maps: "maps.json", Dialogues: "dialogues.json"}

func touch(t *testing.T, parts ...string) {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))
}

func TestScanFindsCompletePacks(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "village", "maps.json")
	touch(t, root, "village", "dialogues.json")
	touch(t, root, "caves", "maps.yaml")
	touch(t, root, "caves", "dialogues.yml")
	touch(t, root, "broken", "maps.json")
	touch(t, root, ".hidden", "maps.json")
	touch(t, root, ".hidden", "dialogues.json")
	touch(t, root, "readme.txt")

	packs, err := ScanDataDirectory(root, files)
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, "caves", packs[0].Name)
	assert.Equal(t, filepath.Join(root, "caves", "maps.yaml"), packs[0].MapsFile)
	assert.Equal(t, filepath.Join(root, "caves", "dialogues.yml"), packs[0].DialoguesFile)
	assert.Equal(t, "village", packs[1].Name)

	p, ok := Find(packs, "village")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "village"), p.Dir)
	_, ok = Find(packs, "broken")
	assert.False(t, ok)
}

func TestScanRootPack(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "maps.json")
	touch(t, root, "dialogues.json")

	packs, err := ScanDataDirectory(root, files)
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, ".", packs[0].Name)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := ScanDataDirectory(filepath.Join(t.TempDir(), "nope"), files)
	assert.Error(t, err)
}

func TestOpenPack(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "village", "maps.json")
	touch(t, root, "village", "dialogues.yaml")

	p, err := OpenPack(filepath.Join(root, "village"), files)
	require.NoError(t, err)
	assert.Equal(t, "village", p.Name)
	assert.Equal(t, filepath.Join(root, "village", "dialogues.yaml"), p.DialoguesFile)

	_, err = OpenPack(root, files)
	assert.Error(t, err)
}
