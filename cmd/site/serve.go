//go:build !js

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/server"
)

var (
	serveListen string
	serveDir    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page, its stylesheet and main.wasm",
	Long: `Starts a static HTTP server for local development. Files in --dir take
precedence; index.html and styles.css fall back to the copies embedded in the
binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Serve.Listen = serveListen
		}
		if cmd.Flags().Changed("dir") {
			cfg.Serve.Dir = serveDir
		}
		logger := newLogger(cfg, "site", os.Stdout)

		srv := server.New(server.Config{
			Dir:             cfg.Serve.Dir,
			AllowAllOrigins: cfg.Serve.AllowAllOrigins,
		}, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(cfg.Serve.Listen) }()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serving: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		logger.Info("server", "stopped", nil)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (overrides serve.listen)")
	serveCmd.Flags().StringVar(&serveDir, "dir", "", "directory with the built site (overrides serve.dir)")
	rootCmd.AddCommand(serveCmd)
}
