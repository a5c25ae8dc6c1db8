package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ruminaider/eurodash/internal/devserver"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the development data source",
	Long:  "Serve every default chart from a synthetic crime statistics cube, so the dashboard can run without the real data source.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := openLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Close()

		fx, err := devserver.DefaultFixture()
		if err != nil {
			return err
		}
		srv := devserver.New(fx, logger.Component("devserver"))

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(serveAddr) }()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Serving %d charts at http://%s\n", len(srv.Routes()), serveAddr)
		fmt.Fprintln(out, "Press Ctrl+C to stop.")

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:5000", "listen address")
}
