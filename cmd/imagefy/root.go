package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"imagefy/internal/auth"
	"imagefy/internal/config"
	"imagefy/internal/download"
	"imagefy/internal/generation"
	"imagefy/internal/logging"
	"imagefy/internal/submission"
	"imagefy/internal/telemetry"
	"imagefy/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// errReported marks a failure the command already printed.
var errReported = errors.New("reported")

type globalOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "imagefy",
		Short:         "Generate images from text prompts",
		Long:          "imagefy is a terminal client for a hosted text-to-image endpoint. Run it without a subcommand to open the interactive UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.imagefy/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGenerateCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newMockEndpointCmd(opts),
	)
	return root
}

// env is what every command shares: config, logger, session and telemetry.
type env struct {
	cfg     config.Config
	logger  *zap.Logger
	session *auth.Session
	tracing *telemetry.Tracing
	metrics *telemetry.Metrics
}

// open loads config and the session. requireEndpoint rejects configs that
// cannot generate.
func (o *globalOptions) open(ctx context.Context, requireEndpoint bool) (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if requireEndpoint {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	logger, err := logging.New(cfg.LogFile, o.verbose)
	if err != nil {
		return nil, err
	}
	session := auth.NewSession(cfg.SessionFile, logger)
	if err := session.Load(); err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	tracing, err := telemetry.NewTracing(ctx)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		tracing = &telemetry.Tracing{}
	}
	return &env{
		cfg:     cfg,
		logger:  logger,
		session: session,
		tracing: tracing,
		metrics: telemetry.NewMetrics(),
	}, nil
}

func (e *env) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := e.tracing.Shutdown(ctx); err != nil {
		e.logger.Warn("tracing shutdown", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func (e *env) generator() generation.Generator {
	return generation.NewClient(e.cfg.FunctionURL, e.cfg.AnonKey, nil)
}

func (e *env) downloads() *download.Store {
	return download.NewStore(e.cfg.DownloadsDir, nil)
}

func (e *env) workflowOptions() []submission.Option {
	return []submission.Option{
		submission.WithLogger(e.logger),
		submission.WithMetrics(e.metrics),
		submission.WithTracer(e.tracing.Tracer()),
		submission.WithTimeout(e.cfg.RequestTimeout),
	}
}

// runTUI runs the interactive UI until the user quits. The metrics server,
// when configured, lives exactly as long as the program.
func runTUI(ctx context.Context, opts *globalOptions) error {
	e, err := opts.open(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := e.session.Watch(ctx); err != nil {
		e.logger.Warn("session watch disabled", zap.Error(err))
	}

	model := ui.NewAppModel(ui.Options{
		Context:   ctx,
		Generator: e.generator(),
		Auth:      e.session,
		Downloads: e.downloads(),
		Logger:    e.logger,
		Workflow:  e.workflowOptions(),
	})

	g, gctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(gctx))
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	if addr := e.cfg.MetricsAddr; addr != "" {
		g.Go(func() error {
			e.logger.Info("metrics server listening", zap.String("addr", addr))
			return e.metrics.Serve(gctx, addr)
		})
	}
	return g.Wait()
}
