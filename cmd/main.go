// Package main provides the CLI entrypoint for the cluster mass analysis.
// It loads configuration, initializes logging, and runs the pipeline once:
// load catalog → select members → kinematics → geometry → masses → report.
package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clustermass/internal/analysis"
	"clustermass/internal/config"
	"clustermass/pkg/logger"
)

func main() {
	var (
		configPath  string
		catalogPath string
		outputDir   string
	)

	rootCmd := &cobra.Command{
		Use:           "clustermass",
		Short:         "Estimates the dynamical and luminous mass of a galaxy cluster from a redshift catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.CatalogPath = catalogPath
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			logger.Setup(cfg.Environment)

			ctx := logger.WithFields(cmd.Context(), zap.String("run_id", uuid.NewString()))

			defer func() {
				if p := recover(); p != nil {
					logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
					_ = logger.Get(ctx).Sync()

					panic(p)
				}
			}()

			_, err = analysis.New(cfg, cmd.OutOrStdout()).Run(ctx)
			if err != nil {
				logger.Error(ctx, "analysis failed", zap.Error(err))
			}
			_ = logger.Get(ctx).Sync()

			return err
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yml", "Config file path")
	rootCmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog CSV path (overrides config)")
	rootCmd.Flags().StringVar(&outputDir, "out", "", "Plot output directory (overrides config)")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
