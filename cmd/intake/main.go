package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aussiebroadwan/intake/internal/intake/app"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/spf13/cobra"
)

// schemaVersioner is implemented by stores with a versioned schema.
type schemaVersioner interface {
	SchemaVersion() (version uint, dirty bool, err error)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.LoadOptions

	loadConfig := func() (app.Config, error) {
		return app.LoadConfig(opts)
	}

	root := &cobra.Command{
		Use:          "intake",
		Short:        "Client intake service",
		Version:      app.BuildVersion,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			return serve(loadConfig)
		},
	}

	root.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "optional YAML config file (environment wins)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP service",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(loadConfig)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Open the configured store and apply its schema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				logger := app.NewLogger(cfg)

				st, err := app.OpenStore(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer st.Close()

				attrs := []any{"driver", cfg.StoreDriver}
				if v, ok := st.(schemaVersioner); ok {
					version, dirty, err := v.SchemaVersion()
					if err != nil {
						return err
					}
					attrs = append(attrs, "version", version, "dirty", dirty)
				}
				logger.Info("store schema up to date", attrs...)
				return nil
			},
		},
		newExportCmd(loadConfig),
		&cobra.Command{
			Use:   "token",
			Short: "Print the legacy admin token for the configured credential",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), service.ComputeToken(cfg.AdminUsername, cfg.AdminPassword))
				return err
			},
		},
	)

	return root
}

func serve(loadConfig func() (app.Config, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run()
}

func newExportCmd(loadConfig func() (app.Config, error)) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every submission as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			st, err := app.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			admin := &service.AdminService{Store: st}
			return admin.ExportCSV(ctx, w)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
