package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/quizfield/internal/config"
	"chosenoffset.com/quizfield/internal/gamescanner"
	"chosenoffset.com/quizfield/internal/placeholders"
	"chosenoffset.com/quizfield/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	fmt.Println("Quiz Field Placeholder Map Generator")
	fmt.Println("====================================")
	fmt.Println()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	packs, err := gamescanner.ScanDataDirectory(cfg.Data.Dir, gamescanner.Files{Maps: cfg.Data.Maps, Dialogues: cfg.Data.Dialogues})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	defaults := world.Size{Width: cfg.Game.DefaultMapWidth, Height: cfg.Game.DefaultMapHeight}
	failed := false
	for _, p := range packs {
		maps, err := world.LoadMaps(p.MapsFile, defaults)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", p.Name, err)
			failed = true
			continue
		}
		written, err := placeholders.GenerateMissing(maps, p.Dir, cfg.Game.TileSize)
		for _, path := range written {
			fmt.Printf("  wrote %s\n", path)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", p.Name, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder maps are ready to use.")
}
