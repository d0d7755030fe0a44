package main

import (
	"flag"
	"log"
	"path/filepath"

	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/audio"
	"chosenoffset.com/quizfield/internal/config"
	"chosenoffset.com/quizfield/internal/game"
	"chosenoffset.com/quizfield/internal/gamescanner"
	"chosenoffset.com/quizfield/internal/logging"
	"chosenoffset.com/quizfield/internal/render"
	ebitenrender "chosenoffset.com/quizfield/internal/render/ebiten"
	"chosenoffset.com/quizfield/internal/save"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	packName := flag.String("pack", "", "play only this pack (overrides data.pack)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *packName != "" {
		cfg.Data.Pack = *packName
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting quiz field",
		zap.String("data", cfg.Data.Dir),
		zap.String("save_backend", cfg.Save.Backend))

	// Scan data directory for available packs
	packs, err := gamescanner.ScanDataDirectory(cfg.Data.Dir, gamescanner.Files{
		Maps:      cfg.Data.Maps,
		Dialogues: cfg.Data.Dialogues,
	})
	if err != nil {
		logger.Fatal("scanning data directory", zap.Error(err))
	}
	if cfg.Data.Pack != "" {
		p, ok := gamescanner.Find(packs, cfg.Data.Pack)
		if !ok {
			logger.Fatal("pack not found", zap.String("pack", cfg.Data.Pack), zap.Int("available", len(packs)))
		}
		packs = []gamescanner.PackEntry{p}
	}
	logger.Info("packs found", zap.Int("count", len(packs)))

	fontPath := cfg.Data.Font
	if fontPath != "" && !filepath.IsAbs(fontPath) {
		fontPath = filepath.Join(cfg.Data.Dir, fontPath)
	}
	renderer, err := ebitenrender.NewRenderer(fontPath, float64(cfg.Data.FontSize), logger)
	if err != nil {
		logger.Fatal("initializing renderer", zap.Error(err))
	}

	store, err := save.Open(cfg.Save, logger)
	if err != nil {
		logger.Fatal("opening save store", zap.Error(err))
	}
	defer store.Close()

	manager := game.NewManager(game.Deps{
		Config:   cfg,
		Renderer: renderer,
		Input:    ebitenrender.NewInput(),
		Loader:   ebitenrender.NewLoader(),
		Audio:    audio.New(cfg.Audio, logger),
		Store:    store,
		Logger:   logger,
	}, packs)

	win := render.Window{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width * cfg.Window.Scale,
		Height:    cfg.Window.Height * cfg.Window.Scale,
		Resizable: cfg.Window.Resizable,
	}
	if err := ebitenrender.NewEngine().Run(manager, win); err != nil {
		logger.Error("game exited with error", zap.Error(err))
		return
	}
	logger.Info("bye")
}
