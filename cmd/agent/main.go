package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"istqb-quiz/internal/bootstrap"
	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/logger"
	"istqb-quiz/internal/service"
	"istqb-quiz/internal/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "agent",
		Short:        "Generate ISTQB practice questions from stored syllabus PDFs",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newOnceCmd(), newIngestCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run passes on the configured interval until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *bootstrap.Container) error {
				agent := service.NewAgent(c.Pipeline, c.Config.Agent.Interval, c.Logger)
				agent.Run(ctx)
				return nil
			})
		},
	}
}

func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single pass over the document store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *bootstrap.Container) error {
				report := service.NewAgent(c.Pipeline, c.Config.Agent.Interval, c.Logger).RunOnce(ctx)
				printReport(cmd, report)
				return nil
			})
		},
	}
}

func newIngestCmd() *cobra.Command {
	var skipUpload bool
	cmd := &cobra.Command{
		Use:   "ingest <file.pdf>",
		Short: "Upload a local PDF and generate questions from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if errs := validation.NewValidator(0).ValidateUpload(filepath.Base(path), "application/pdf", int64(len(raw))); len(errs) > 0 {
				return errs
			}

			return withContainer(cmd.Context(), func(ctx context.Context, c *bootstrap.Container) error {
				name := validation.SanitizeFileName(path)
				if !skipUpload {
					f, err := os.Open(path)
					if err != nil {
						return err
					}
					defer f.Close()
					if err := c.Store.Upload(ctx, name, f, "application/pdf"); err != nil {
						return err
					}
				}
				result, err := c.Pipeline.ProcessContent(ctx, name, raw)
				if err != nil {
					return err
				}
				s := result.Summary
				cmd.Printf("%s: strategy=%s generated=%d inserted=%d (expert=%d master=%d champion=%d)\n",
					name, result.Outcome.Strategy, result.Outcome.Generated, result.Outcome.Inserted,
					s.ExpertCount, s.MasterCount, s.ChampionCount)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&skipUpload, "no-upload", false, "process the file without copying it into the document store")
	return cmd
}

func printReport(cmd *cobra.Command, report domain.PassReport) {
	for _, o := range report.Outcomes {
		if o.Skipped {
			cmd.Printf("%-50s skipped (%s)\n", o.SourceID, o.SkipReason)
			continue
		}
		cmd.Printf("%-50s %-10s generated=%d inserted=%d\n", o.SourceID, o.Strategy, o.Generated, o.Inserted)
	}
	cmd.Printf("listed=%d processed=%d skipped=%d inserted=%d\n",
		report.Listed, report.Processed, report.Skipped, report.Inserted)
}

// withContainer loads configuration, wires dependencies and runs fn with a context
// cancelled on SIGINT or SIGTERM.
func withContainer(parent context.Context, fn func(ctx context.Context, c *bootstrap.Container) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Get()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Error("Startup failed", zap.Error(err))
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warn("Shutdown finished with errors", zap.Error(err))
		}
	}()

	return fn(ctx, c)
}
