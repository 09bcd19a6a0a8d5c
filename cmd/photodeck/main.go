package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/photodeck/internal/adapter"
	"github.com/mmcdole/photodeck/internal/adapter/source"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/export"
	"github.com/mmcdole/photodeck/internal/gallery"
	"github.com/mmcdole/photodeck/internal/store"
	"github.com/mmcdole/photodeck/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		configPath  string
		view        string
		clearCache  bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&view, "view", "", "initial view: grid or table")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove cached pages and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("photodeck %s\n", Version)
		return
	}

	if err := run(configPath, view, clearCache); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, view string, clearCache bool) error {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if view != "" {
		cfg.UI.DefaultView = view
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if clearCache {
		if err := adapter.ClearCache(cfg.CacheDir()); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting photodeck", "version", Version, "source", cfg.Source.BaseURL)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("photodeck needs an interactive terminal")
	}

	repo, err := source.NewClient(&cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("failed to create photo source: %w", err)
	}

	// Memory-only when the cache is disabled; a broken cache dir degrades
	// to no cache at all
	var cache domain.Store
	photoStore, err := store.NewPhotoStore(cfg.CacheDir(), cfg.Source.BaseURL)
	if err != nil {
		logger.Warn("cache unavailable, continuing without it", "dir", cfg.CacheDir(), "error", err)
	} else {
		defer photoStore.Close()
		cache = photoStore
	}

	svc := gallery.NewService(repo, cache, logger, gallery.Options{
		KnownTotal: cfg.Source.TotalPhotos,
		CacheTTL:   cfg.Cache.TTL,
		Collation:  cfg.UI.Collation,
	})
	launcher := adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger)
	clip := export.NewClipboard(os.Stderr)

	model := tui.NewModel(svc, launcher, clip, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
