package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8080, or $PORT)")
	serveCmd.Flags().String("mode", "", "gin mode: debug, release or test")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.Mode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := content.LoadRoadmap(ctx, cfg.Content)
	if err != nil {
		return err
	}
	logger.Info("roadmap loaded",
		zap.String("source", sourceName(cfg.Content)),
		zap.Int("nodes", store.Len()))

	srv, err := web.New(cfg, store, logger)
	if err != nil {
		return err
	}
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func sourceName(s string) string {
	if s == "" {
		return "embedded"
	}
	return s
}
