package gamescanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PackEntry is a playable scenario pack: a directory holding a maps file and
// a dialogues file.
type PackEntry struct {
	Name          string // Display name (directory name)
	Dir           string // Full directory path
	MapsFile      string // Full path of the maps file
	DialoguesFile string // Full path of the dialogues file
}

// Files names the data files a pack must contain. Each name is matched on
// its stem, so "maps.json" also finds "maps.yaml" and "maps.yml".
type Files struct {
	Maps      string
	Dialogues string
}

var dataExtensions = []string{".json", ".yaml", ".yml"}

// ScanDataDirectory lists the packs under dataPath, sorted by name. The data
// directory itself counts as a pack named "." when it holds both files.
func ScanDataDirectory(dataPath string, files Files) ([]PackEntry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var packs []PackEntry
	if p, ok := scanPack(dataPath, ".", files); ok {
		packs = append(packs, p)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// Skip hidden and asset directories
		dirName := entry.Name()
		if strings.HasPrefix(dirName, ".") || dirName == "sounds" || dirName == "fonts" {
			continue
		}

		if p, ok := scanPack(filepath.Join(dataPath, dirName), dirName, files); ok {
			packs = append(packs, p)
		}
	}

	sort.Slice(packs, func(i, j int) bool { return packs[i].Name < packs[j].Name })
	return packs, nil
}

// Find returns the pack called name.
func Find(packs []PackEntry, name string) (PackEntry, bool) {
	for _, p := range packs {
		if p.Name == name {
			return p, true
		}
	}
	return PackEntry{}, false
}

func scanPack(dir, name string, files Files) (PackEntry, bool) {
	maps, ok := findDataFile(dir, files.Maps)
	if !ok {
		return PackEntry{}, false
	}
	dialogues, ok := findDataFile(dir, files.Dialogues)
	if !ok {
		return PackEntry{}, false
	}
	return PackEntry{Name: name, Dir: dir, MapsFile: maps, DialoguesFile: dialogues}, true
}

// findDataFile looks for want in dir, first verbatim and then under each
// supported extension.
func findDataFile(dir, want string) (string, bool) {
	if want == "" {
		return "", false
	}
	candidates := []string{want}
	stem := strings.TrimSuffix(want, filepath.Ext(want))
	for _, ext := range dataExtensions {
		if c := stem + ext; c != want {
			candidates = append(candidates, c)
		}
	}
	for _, c := range candidates {
		p := filepath.Join(dir, c)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// OpenPack reads a single pack directory.
func OpenPack(dir string, files Files) (PackEntry, error) {
	p, ok := scanPack(dir, filepath.Base(dir), files)
	if !ok {
		return PackEntry{}, fmt.Errorf("%s does not contain %s and %s", dir, files.Maps, files.Dialogues)
	}
	return p, nil
}
