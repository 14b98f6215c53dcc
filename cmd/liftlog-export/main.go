package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/export"
	"github.com/claude/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	format := flag.String("format", "json", "output format: json or csv")
	outPath := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *format != "json" && *format != "csv" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-export -config config.yaml [-format json|csv] [-out file]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path, log)
	if err != nil {
		log.Error("failed to open store", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	state, err := store.LoadState()
	if err != nil {
		log.Error("failed to load state", "error", err)
		os.Exit(1)
	}
	if state == nil {
		log.Error("no workout data to export", "path", cfg.Storage.Path)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error("failed to create output file", "path", *outPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	eng := engine.New(state, nil, log)

	switch *format {
	case "json":
		err = export.WriteBackup(out, eng.Export())
	case "csv":
		err = export.WriteCSV(out, state.WorkoutHistory)
	}
	if err != nil {
		log.Error("export failed", "format", *format, "error", err)
		os.Exit(1)
	}

	if *outPath != "" {
		log.Info("export written", "format", *format, "path", *outPath)
	}
}
