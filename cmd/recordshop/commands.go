package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"recordshop/internal/config"
	"recordshop/internal/logging"
)

type cli struct {
	envFiles []string
	cfg      *config.Config
	logger   *logging.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "recordshop",
		Short:         "Record shop album catalogue service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.logger != nil {
				return c.logger.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", config.DefaultEnvFiles,
		"env files loaded before reading the environment; missing files are ignored")

	root.AddCommand(c.serveCmd(), c.seedCmd())
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.envFiles...)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.logger = logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
		File:   cfg.Logging.File,
	})
	logging.SetGlobalLogger(c.logger)
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dataStore, closeStore, err := openStore(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if c.cfg.SeedDemoData {
				if _, err := seedDemoAlbums(ctx, dataStore); err != nil {
					return err
				}
			}

			handler := newHTTPHandler(ctx, c.cfg, dataStore)
			return runServer(ctx, c.cfg.Server.Addr(), handler)
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo albums into an empty catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dataStore, closeStore, err := openStore(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			inserted, err := seedDemoAlbums(ctx, dataStore)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d demo albums\n", inserted)
			return nil
		},
	}
}
