package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/internal/config"
	"github.com/dhabedank/lumina/internal/logging"
	"github.com/dhabedank/lumina/internal/metrics"
	"github.com/dhabedank/lumina/internal/store"
)

// ConfigFile is the --config flag shared by every command.
var ConfigFile string

// app is the state every command starts from: configuration, the log file
// and the open store.
type app struct {
	cfg        *config.Config
	configPath string
	store      *store.Store
	logger     zerolog.Logger

	logCloser io.Closer
}

// openApp loads configuration, starts logging and opens the store. An
// ephemeral app uses an in-memory store that is discarded on Close.
func openApp(ephemeral bool) (*app, error) {
	cfg, configPath, err := config.Load(ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	closer, err := logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start logging: %w", err)
	}

	a := &app{
		cfg:        cfg,
		configPath: configPath,
		logger:     logging.Component("cmd"),
		logCloser:  closer,
	}

	storeLogger := logging.Component("store")
	if ephemeral {
		a.store, err = store.OpenInMemory(storeLogger)
	} else {
		a.store, err = store.Open(cfg.Storage.Dir, storeLogger)
	}
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	a.logger.Debug().
		Str("config", configPath).
		Str("store", cfg.Storage.Dir).
		Bool("ephemeral", ephemeral).
		Msg("app opened")
	return a, nil
}

// Close flushes metrics and releases the store and the log file.
func (a *app) Close() error {
	metricsErr := metrics.WriteTextfile(a.cfg.Metrics.File)
	if metricsErr != nil {
		a.logger.Warn().Err(metricsErr).Msg("metrics not written")
	}
	return errors.Join(metricsErr, a.store.Close(), a.logCloser.Close())
}

// withApp adapts a function taking an app into a cobra RunE.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, a.Close())
		}()
		return fn(cmd, args, a)
	}
}
