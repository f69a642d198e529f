package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hughdickinson/DCWConsensus/config"
	"github.com/hughdickinson/DCWConsensus/consensus"
	"github.com/hughdickinson/DCWConsensus/database"
	"github.com/hughdickinson/DCWConsensus/handlers"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dcwconsensus",
	Short: "Serve consensus transcriptions of Decoding the Civil War subjects",
	Long: `dcwconsensus fuses the aggregated volunteer transcriptions of a scanned
telegram page into one record: lines with ranked word alternatives, the boxes
volunteers drew around message blocks, telegram numbers and span-level tags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to parse log level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitDB(cfg.Database, logger); err != nil {
			return err
		}

		gin.SetMode(cfg.Server.Mode)
		h, err := handlers.New(database.GetDB(), cfg, logger)
		if err != nil {
			return err
		}
		r := handlers.NewRouter(h)

		logger.Info("Starting consensus server", zap.String("addr", cfg.Server.Addr))
		return r.Run(cfg.Server.Addr)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the consensus tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitDB(cfg.Database, logger); err != nil {
			return err
		}
		if err := database.Migrate(database.GetDB()); err != nil {
			return err
		}
		logger.Info("Migration complete")
		return nil
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results [subject-id]",
	Short: "Print the consensus record of a subject as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssembler(cmd.Context(), args[0], func(ctx context.Context, a *consensus.Assembler) error {
			result, err := a.AllResults(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		})
	},
}

var textCmd = &cobra.Command{
	Use:   "text [subject-id]",
	Short: "Print the best-guess consensus text of a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssembler(cmd.Context(), args[0], func(ctx context.Context, a *consensus.Assembler) error {
			text, err := a.ConsensusText(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (reliability %.4f)\n\n%s\n", text.Header.HuntingtonID, text.Header.Reliability, text.Text)
			for _, w := range text.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Code, w.Message)
			}
			return nil
		})
	},
}

func withAssembler(ctx context.Context, arg string, fn func(context.Context, *consensus.Assembler) error) error {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid subject id %q: %w", arg, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := database.InitDB(cfg.Database, logger); err != nil {
		return err
	}
	coverage, err := consensus.CoverageByName(cfg.Matching.Coverage, cfg.Matching.Threshold)
	if err != nil {
		return err
	}
	opts := consensus.Options{
		Coverage:      coverage,
		WordSeparator: cfg.Text.WordSeparator,
		LineBreak:     cfg.Text.LineBreak,
	}
	return database.WithConnection(ctx, database.GetDB(), func(store *database.Store) error {
		return fn(ctx, consensus.NewAssembler(store, uint(id), opts, logger))
	})
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "dcwconsensus.yaml", "Path to YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd, migrateCmd, resultsCmd, textCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
