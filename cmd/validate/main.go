package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/quizfield/internal/config"
	"chosenoffset.com/quizfield/internal/dialog"
	"chosenoffset.com/quizfield/internal/gamescanner"
	"chosenoffset.com/quizfield/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: validate [-config config.yaml] <pack-dir>")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dir := flag.Arg(0)
	fmt.Printf("Validating %s...\n", dir)

	pack, err := gamescanner.OpenPack(dir, gamescanner.Files{Maps: cfg.Data.Maps, Dialogues: cfg.Data.Dialogues})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	problems := checkPack(pack, cfg.Game)
	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "Found %d problem(s):\n", len(problems))
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %v\n", p)
		}
		os.Exit(1)
	}

	fmt.Println("✓ Pack is valid")
}

// checkPack loads both data files and cross-checks them. Load errors are
// returned alone since nothing else can be checked without the data.
func checkPack(pack gamescanner.PackEntry, g config.GameConfig) []error {
	maps, err := world.LoadMaps(pack.MapsFile, world.Size{Width: g.DefaultMapWidth, Height: g.DefaultMapHeight})
	if err != nil {
		return []error{err}
	}
	entries, err := dialog.Load(pack.DialoguesFile, g.StartMap)
	if err != nil {
		return []error{err}
	}
	if _, err := dialog.NewEngine(entries, dialog.DefaultOptions(), nil); err != nil {
		return []error{err}
	}

	problems := maps.CheckExits()

	start, ok := maps.Get(g.StartMap)
	switch {
	case !ok:
		problems = append(problems, fmt.Errorf("start map %q is not defined", g.StartMap))
	case !start.Walkable(world.Position{X: g.StartX, Y: g.StartY}):
		problems = append(problems, fmt.Errorf("start position %d,%d on %q is not walkable", g.StartX, g.StartY, g.StartMap))
	}

	seen := make(map[string]string)
	for _, e := range entries {
		if e.Position == nil {
			continue
		}
		m, ok := maps.Get(e.MapID)
		if !ok {
			problems = append(problems, fmt.Errorf("dialog %q: unknown map %q", e.Key, e.MapID))
			continue
		}
		if !m.InBounds(*e.Position) {
			problems = append(problems, fmt.Errorf("dialog %q: position %s is outside map %q", e.Key, e.Position, e.MapID))
			continue
		}
		if m.IsBlocked(*e.Position) {
			problems = append(problems, fmt.Errorf("dialog %q: position %s is a wall", e.Key, e.Position))
		}
		if _, ok := m.ExitAt(*e.Position); ok {
			problems = append(problems, fmt.Errorf("dialog %q: position %s is an exit", e.Key, e.Position))
		}
		at := e.MapID + "@" + e.Position.String()
		if other, ok := seen[at]; ok {
			problems = append(problems, fmt.Errorf("dialog %q: shares %s with %q", e.Key, at, other))
		}
		seen[at] = e.Key
	}
	return problems
}
