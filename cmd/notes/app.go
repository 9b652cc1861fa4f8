package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"example.com/notes-web/internal/config"
	"example.com/notes-web/internal/db"
	"example.com/notes-web/internal/logging"
	"example.com/notes-web/internal/notes"
	"example.com/notes-web/internal/storage"
)

type app struct {
	cfg     config.Config
	log     *logrus.Logger
	store   *notes.NoteStore
	closers []func() error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = logrus.DebugLevel.String()
	}
	log, err := logging.New(os.Stderr, level, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	backend, err := a.openBackend(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	log.WithField("backend", backend.Describe()).Debug("storage ready")
	a.store = notes.NewNoteStore(backend, notes.WithLogger(log))
	return a, nil
}

func (a *app) openBackend(ctx context.Context) (storage.Backend, error) {
	switch a.cfg.StorageBackend {
	case config.BackendPostgres:
		conn, err := db.Open(ctx, a.cfg.DatabaseURL, db.PoolOptions{
			MaxOpenConns:    a.cfg.MaxOpenConns,
			MaxIdleConns:    a.cfg.MaxIdleConns,
			ConnMaxLifetime: a.cfg.ConnMaxLifetime,
			ConnMaxIdleTime: a.cfg.ConnMaxIdleTime,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)

		pg, err := storage.NewPostgresBackend(ctx, conn.SQL, a.cfg.DocumentName)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		return pg, nil
	default:
		return storage.NewFileBackend(afero.NewOsFs(), a.cfg.NotesFile), nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
