package main

import (
	"os/signal"
	"syscall"
	"time"

	"imagefy/internal/config"
	"imagefy/internal/httpserve"
	"imagefy/internal/logging"
	"imagefy/internal/mockapi"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMockEndpointCmd(opts *globalOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "mock-endpoint",
		Short: "Serve a local stand-in for the generation endpoint",
		Long: "Serve a local generation endpoint that renders a solid-color PNG per prompt.\n" +
			"Prompts starting with \"" + mockapi.FailPrefix + "\" fail with the rest of the prompt as the error.\n" +
			"Point function_url at http://<addr>/functions/v1/generate-image to use it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.NewConsole(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("mock endpoint listening", zap.String("addr", addr))
			err = httpserve.Run(ctx, addr, mockapi.New(cfg.AnonKey, logger).Handler(), 5*time.Second)
			logger.Info("mock endpoint stopped")
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8787", "listen address")
	return cmd
}
