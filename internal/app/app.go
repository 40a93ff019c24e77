package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/leadflow/internal/activity"
	"github.com/five82/leadflow/internal/config"
	"github.com/five82/leadflow/internal/logging"
	"github.com/five82/leadflow/internal/pipeline"
	"github.com/five82/leadflow/internal/prefs"
	"github.com/five82/leadflow/internal/state"
	"github.com/five82/leadflow/internal/ui"
)

// Options configure the LeadFlow application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/leadflow/prefs.toml
	Endpoint   string // overrides the config file and environment
	Debug      bool
}

// Run boots the LeadFlow dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, logger, client, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store := &state.Store{}
	rec := activity.NewRecorder(activity.WithLogger(logger))
	inv := NewInvoker(client, store, rec, logger)

	logger.Info("dashboard starting", zap.String("endpoint", client.Endpoint()))
	err = ui.Run(ui.Options{
		Context:   ctx,
		Invoker:   inv,
		Store:     store,
		Recorder:  rec,
		Config:    &cfg,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// setup loads configuration and builds the logger and pipeline client shared
// by the dashboard and headless runs.
func setup(opts Options) (config.Config, *zap.Logger, *pipeline.Client, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if ep := strings.TrimSpace(opts.Endpoint); ep != "" {
		cfg.Endpoint = ep
		if err := cfg.Validate(); err != nil {
			return config.Config{}, nil, nil, fmt.Errorf("endpoint flag: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogFile, opts.Debug)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := pipeline.NewClient(cfg.Endpoint, cfg.RequestTimeout)
	if err != nil {
		_ = logger.Sync()
		return config.Config{}, nil, nil, fmt.Errorf("init pipeline client: %w", err)
	}
	return cfg, logger, client, nil
}
