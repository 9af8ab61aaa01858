package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/aguxez/babyfood/analysis"
	"github.com/aguxez/babyfood/config"
	"github.com/aguxez/babyfood/filewatch"
	"github.com/aguxez/babyfood/library"
	"github.com/aguxez/babyfood/logging"
	"github.com/aguxez/babyfood/models"
	"github.com/aguxez/babyfood/storage"
	"github.com/aguxez/babyfood/store"
)

// App is everything a presentation layer needs: the entry store and the
// food library, wired from configuration.
type App struct {
	Store   *store.EntryStore
	Library *library.Catalog
	Log     *logrus.Logger

	storage   storage.Storage
	watcher   *filewatch.FileWatcher
	logCloser io.Closer
}

// New wires logger, storage, library, store and (optionally) the file
// watcher from cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a := &App{Log: logger, logCloser: logCloser}

	loc, err := cfg.Calendar.Location()
	if err != nil {
		a.Close()
		return nil, err
	}
	weekStart, err := cfg.Calendar.FirstWeekday()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.storage, err = openStorage(ctx, cfg.Storage)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.WithField("driver", cfg.Storage.Driver).Info("storage ready")

	a.Library = library.Default()
	if cfg.Library.CSV != "" {
		extra, err := library.ParseCSV(cfg.Library.CSV)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("loading library: %w", err)
		}
		a.Library = a.Library.Extend(extra...)
		logger.WithField("count", len(extra)).Info("loaded extra library foods")
	}

	a.Store = store.New(a.storage,
		store.WithKey(cfg.Storage.Key),
		store.WithLocation(loc),
		store.WithWeekStart(weekStart),
		store.WithLogger(logger),
	)

	if cfg.Storage.Watch {
		fs, ok := a.storage.(*storage.File)
		if !ok {
			logger.WithField("driver", cfg.Storage.Driver).Warn("storage.watch only works with the file driver")
		} else {
			a.watcher, err = filewatch.NewFileWatcher(fs.Dir(), cfg.Storage.Key+storage.FileExt, a.Store, logger)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("creating file watcher: %w", err)
			}
			go a.watcher.Watch()
		}
	}

	return a, nil
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case "file":
		return storage.NewFile(cfg.Dir)
	case "postgres":
		return storage.NewPostgres(ctx, cfg.PostgresDSN)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Suggestions returns library foods worth trying given what has been logged.
func (a *App) Suggestions() []models.FoodLibraryItem {
	return analysis.SuggestFoods(a.Store.Entries(), a.Store.Analysis(), a.Library)
}

func (a *App) Close() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	if a.watcher != nil {
		keep(a.watcher.Close())
	}
	if a.storage != nil {
		keep(a.storage.Close())
	}
	if a.logCloser != nil {
		keep(a.logCloser.Close())
	}
	return first
}
