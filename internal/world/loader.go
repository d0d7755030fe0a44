package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeFile reads path and unmarshals it as YAML (.yaml, .yml) or JSON
// (anything else) into v.
func DecodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing YAML %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing JSON %s: %w", path, err)
		}
	}
	return nil
}

// fileMap is the on-disk representation of one map.
type fileMap struct {
	Image  string     `json:"image" yaml:"image"`
	BGM    string     `json:"bgm" yaml:"bgm"`
	Width  int        `json:"width" yaml:"width"`
	Height int        `json:"height" yaml:"height"`
	Walls  [][]int    `json:"walls" yaml:"walls"`
	Exits  []fileExit `json:"exits" yaml:"exits"`
}

type fileExit struct {
	X         int    `json:"x" yaml:"x"`
	Y         int    `json:"y" yaml:"y"`
	TargetMap string `json:"target_map" yaml:"target_map"`
	DestX     int    `json:"dest_x" yaml:"dest_x"`
	DestY     int    `json:"dest_y" yaml:"dest_y"`
}

// Size is the map size used when a record omits width or height.
type Size struct {
	Width  int
	Height int
}

// LoadMaps reads a map file and builds a Registry from it.
func LoadMaps(path string, defaults Size) (*Registry, error) {
	var file map[string]fileMap
	if err := DecodeFile(path, &file); err != nil {
		return nil, err
	}
	reg, err := buildRegistry(file, defaults)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}
	return reg, nil
}

// LoadMapsFromBytes parses JSON map data.
func LoadMapsFromBytes(data []byte, defaults Size) (*Registry, error) {
	var file map[string]fileMap
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing map JSON: %w", err)
	}
	return buildRegistry(file, defaults)
}

func buildRegistry(file map[string]fileMap, defaults Size) (*Registry, error) {
	if len(file) == 0 {
		return nil, errors.New("no maps defined")
	}
	ids := make([]string, 0, len(file))
	for id := range file {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	maps := make([]*MapDescriptor, 0, len(ids))
	for _, id := range ids {
		m, err := convertMap(id, file[id], defaults)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		maps = append(maps, m)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return NewRegistry(maps...)
}

// convertMap turns a parsed record into a validated MapDescriptor.
func convertMap(id string, fm fileMap, defaults Size) (*MapDescriptor, error) {
	m := &MapDescriptor{
		ID:      id,
		Image:   fm.Image,
		BGM:     fm.BGM,
		Width:   fm.Width,
		Height:  fm.Height,
		Blocked: make(map[Position]struct{}, len(fm.Walls)),
		Exits:   make(map[Position]Exit, len(fm.Exits)),
	}
	if m.Width == 0 {
		m.Width = defaults.Width
	}
	if m.Height == 0 {
		m.Height = defaults.Height
	}
	if id == "" {
		return nil, errors.New("map with empty id")
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("map %q: invalid dimensions %dx%d", id, m.Width, m.Height)
	}

	for i, w := range fm.Walls {
		if len(w) != 2 {
			return nil, fmt.Errorf("map %q: wall %d: want [x, y], got %v", id, i, w)
		}
		m.Blocked[Position{X: w[0], Y: w[1]}] = struct{}{}
	}

	for i, e := range fm.Exits {
		p := Position{X: e.X, Y: e.Y}
		if !m.InBounds(p) {
			return nil, fmt.Errorf("map %q: exit %d at %s is outside the map", id, i, p)
		}
		if e.TargetMap == "" {
			return nil, fmt.Errorf("map %q: exit %d at %s has no target_map", id, i, p)
		}
		if _, dup := m.Exits[p]; dup {
			return nil, fmt.Errorf("map %q: two exits at %s", id, p)
		}
		m.Exits[p] = Exit{Target: e.TargetMap, Destination: Position{X: e.DestX, Y: e.DestY}}
	}
	return m, nil
}
