package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edustream/internal/config"
	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/llm"
	"github.com/abhisek/edustream/internal/logging"
	"github.com/abhisek/edustream/internal/metrics"
	"github.com/abhisek/edustream/internal/store"
	"github.com/abhisek/edustream/internal/tutor"
)

// demoResponder answers requests when --provider mock is selected.
var demoResponder = curriculum.SampleResponder

// env is everything a command needs to talk to the generative service.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	metrics  *metrics.Metrics
	provider llm.Provider
	closers  []func()
}

// loadConfig resolves configuration from the command's flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(file, cmd.Flags())
}

// resolveDBPath returns the database path from config (--db flag or
// EDUSTREAM_DB), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit log database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// setup builds the logger, store, metrics and provider. A missing provider
// credential is returned as *llm.ErrMissingCredential before anything
// talks to the network.
func setup(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	llmCfg, err := cfg.Provider()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	logger, closeLog, err := logging.New(cfg.Logging())
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	e.logger = logger
	e.closers = append(e.closers, closeLog)

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, func() { _ = st.Close() })

	e.metrics = metrics.New()
	if addr := cfg.Metrics.Addr; addr != "" {
		mctx, cancel := context.WithCancel(ctx)
		e.closers = append(e.closers, cancel)
		go func() {
			if err := e.metrics.Serve(mctx, addr, logger); err != nil {
				logger.Error("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	audit := llm.Audit{
		Provider: llmCfg.Provider,
		Events:   st.EventRepo(),
		Logger:   logger,
		Observer: e.metrics,
	}
	if llmCfg.Provider == llm.ProviderMock {
		mock := llm.NewMockProvider()
		mock.Responder = demoResponder
		e.provider = llm.Wrap(mock, llmCfg.Timeout, audit)
	} else {
		e.provider, err = llm.NewProvider(ctx, llmCfg, audit)
		if err != nil {
			e.Close()
			return nil, err
		}
	}

	logger.Info("edustream starting",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", e.provider.ModelID()),
		zap.Duration("timeout", llmCfg.Timeout),
		zap.String("db", dbPath),
	)
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

func (e *env) generator() *curriculum.LLMGenerator {
	cfg := curriculum.DefaultConfig()
	if e.cfg.LLM.MaxTokens > 0 {
		cfg.MaxTokens = e.cfg.LLM.MaxTokens
	}
	if e.cfg.LLM.Temperature > 0 {
		cfg.Temperature = e.cfg.LLM.Temperature
	}
	return curriculum.NewGenerator(e.provider, cfg, e.logger)
}

func (e *env) mentor() *tutor.Mentor {
	cfg := tutor.DefaultConfig()
	if e.cfg.LLM.Temperature > 0 {
		cfg.Temperature = e.cfg.LLM.Temperature
	}
	return tutor.NewMentor(e.provider, cfg, e.logger)
}
