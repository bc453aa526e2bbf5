package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/config"
	"github.com/five82/flightsearch/internal/db"
	"github.com/five82/flightsearch/internal/favorite"
	"github.com/five82/flightsearch/internal/logging"
	"github.com/five82/flightsearch/internal/logtail"
	"github.com/five82/flightsearch/internal/prefs"
	"github.com/five82/flightsearch/internal/ui"
)

// Options configure the flightsearch application. Empty fields use the
// config file, then the built-in defaults.
type Options struct {
	ConfigPath string
	PrefsPath  string
	DBPath     string
}

// env holds the initialized dependencies shared by every entry point.
type env struct {
	cfg    config.Config
	logger *zap.SugaredLogger
	db     *gorm.DB
}

func (e *env) Close() {
	if err := db.Close(e.db); err != nil {
		e.logger.Warnw("close database", "error", err)
	}
	_ = e.logger.Sync()
}

// open loads the configuration, starts logging and opens the database.
func open(opts Options) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.PrefsPath != "" {
		if cfg.PrefsPath, err = config.ExpandPath(opts.PrefsPath); err != nil {
			return nil, fmt.Errorf("prefs path: %w", err)
		}
	}
	if opts.DBPath != "" {
		if cfg.DatabasePath, err = config.ExpandPath(opts.DBPath); err != nil {
			return nil, fmt.Errorf("database path: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &env{cfg: cfg, logger: logger, db: gdb}, nil
}

// Run boots the search screen until the user quits or the context is
// cancelled. Initialization failures are returned before the screen opens.
func Run(ctx context.Context, opts Options) error {
	e, err := open(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := db.EnsureSeeded(ctx, e.db, e.logger); err != nil {
		return fmt.Errorf("seed airports: %w", err)
	}

	e.logger.Infow("starting search screen",
		"database", e.cfg.DatabasePath,
		"prefs", e.cfg.PrefsPath,
	)

	err = ui.Run(ctx, ui.Options{
		Context:   ctx,
		Logger:    e.logger,
		Airports:  airport.NewRepository(e.db),
		Favorites: favorite.NewRepository(e.db),
		Prefs:     prefs.Open(e.cfg.PrefsPath),
	})
	if err != nil {
		return fmt.Errorf("run screen: %w", err)
	}
	return nil
}

// Seed replaces the airport dataset with the JSON read from r.
func Seed(ctx context.Context, opts Options, r io.Reader) (int, error) {
	e, err := open(opts)
	if err != nil {
		return 0, err
	}
	defer e.Close()

	n, err := db.Seed(ctx, e.db, r, e.logger)
	if err != nil {
		return 0, fmt.Errorf("seed airports: %w", err)
	}
	return n, nil
}

// ListFavorites returns every saved route in the order it was saved.
func ListFavorites(ctx context.Context, opts Options) ([]favorite.Favorite, error) {
	e, err := open(opts)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	return favorite.NewRepository(e.db).All(ctx)
}

// TailLog returns the last lines of the log file at or above level,
// rendered as plain text. It reads the config only and never opens the
// database.
func TailLog(opts Options, lines int, level string) ([]string, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	minLevel, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	raw, err := logtail.Read(cfg.LogPath, lines)
	if err != nil {
		return nil, err
	}
	entries := make([]logtail.Entry, 0, len(raw))
	for _, line := range raw {
		entries = append(entries, logtail.Parse(line))
	}

	out := make([]string, 0, len(entries))
	for _, e := range logtail.Filter(entries, minLevel) {
		out = append(out, e.Format())
	}
	return out, nil
}
