package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/assist"
	"github.com/abhisek/flashiz/internal/auth"
	"github.com/abhisek/flashiz/internal/config"
	"github.com/abhisek/flashiz/internal/llm"
	"github.com/abhisek/flashiz/internal/logz"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/store"
)

// deps is everything a command needs to talk to the backend and the local
// cache. Close releases the store.
type deps struct {
	cfg    *config.Config
	store  *store.Store
	client *api.Client
	auth   *auth.Manager
	stats  *stats.Service
	logger *zap.Logger
}

// loadConfig resolves configuration from the command's flags and installs
// the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logz.Init(cfg.Log.Level, "flashiz", cfg.Log.File); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path from config (flag, env or file),
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger := logz.NewLogger()

	// The client reads the token from the manager, which in turn uses the
	// client to sign in.
	var mgr *auth.Manager
	tokens := api.TokenFunc(func(ctx context.Context) (string, error) {
		return mgr.Token(ctx)
	})
	client := api.New(cfg.APIURL,
		api.WithTokenSource(tokens),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRetry(cfg.APIRetry()),
		api.WithLogger(logger),
	)
	mgr = auth.NewManager(client, st.KV(), logger)

	return &deps{
		cfg:    cfg,
		store:  st,
		client: client,
		auth:   mgr,
		stats:  stats.NewService(client, st.HistoryRepo(), logger),
		logger: logger,
	}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.logger.Warn("close store", zap.Error(err))
	}
	logz.Drop()
}

// services wires the TUI dependencies. The LLM provider is optional: when
// none is configured hints fall back to the first letter and distractor
// suggestions are unavailable.
func (d *deps) services(ctx context.Context) *screen.Services {
	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), d.store.EventRepo(), d.logger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		provider = nil
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		provider = nil
	}

	history := d.store.HistoryRepo()
	return &screen.Services{
		Auth:            d.auth,
		Decks:           d.client,
		Writer:          d.client,
		Stats:           d.stats,
		Recorder:        session.NewRecorder(history, d.client, d.logger),
		History:         history,
		Assist:          assist.New(provider, d.logger),
		RevealDelay:     d.cfg.Quiz.RevealDelay,
		TransitionDelay: d.cfg.Quiz.TransitionDelay,
		Logger:          d.logger,
	}
}

// handleAuthError clears a rejected session and rewrites the error so the
// user knows to sign in again.
func (d *deps) handleAuthError(ctx context.Context, err error) error {
	if d.auth.HandleError(ctx, err) {
		return fmt.Errorf("%s: run `flashiz login`", screen.SessionExpiredNotice)
	}
	return err
}
