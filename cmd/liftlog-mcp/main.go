package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/engine"
	mcpserver "github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	remote := flag.String("remote", "", "base URL of a running liftlog server; reads state over HTTP instead of opening the store")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var src mcpserver.StateSource
	if *remote != "" {
		src = mcpserver.NewHTTPClient(*remote)
	} else {
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
			state = models.NewWorkoutState()
		}

		src = mcpserver.NewEngineSource(engine.New(state, store.SaveState, log))
	}

	s := mcpserver.New(src, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
