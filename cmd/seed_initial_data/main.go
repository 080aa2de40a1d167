package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"istqb-quiz/cmd/seed_initial_data/seedmodels"
	"istqb-quiz/internal/bootstrap"
	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultSeedFile = "configs/seed_data/istqb_questions.json"

type questionFilter interface {
	FilterNew(ctx context.Context, questions []domain.Question, sourceID string) []domain.Question
}

type questionInserter interface {
	InsertMany(ctx context.Context, questions []domain.Question) error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:          "seed_initial_data",
		Short:        "Import a hand-written question bank into the questions table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sets, err := loadSeedFile(file)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.Initialize(cfg.Logger); err != nil {
				return err
			}
			defer logger.Sync()
			log := logger.Get()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c, err := bootstrap.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			var repo questionInserter = c.Questions
			if dryRun {
				repo = nil
			}
			inserted, err := seedQuestions(ctx, sets, c.Gate, repo, log)
			if err != nil {
				return err
			}
			cmd.Printf("sets=%d inserted=%d dry_run=%t\n", len(sets), inserted, dryRun)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultSeedFile, "JSON file holding an array of question sets")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "sanitize and deduplicate without inserting")
	return cmd
}

func loadSeedFile(path string) ([]seedmodels.SeedSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var sets []seedmodels.SeedSet
	if err := json.Unmarshal(raw, &sets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return sets, nil
}

// seedQuestions sanitizes and deduplicates each set, then inserts what is new.
// A nil repo counts the new questions without writing them.
func seedQuestions(ctx context.Context, sets []seedmodels.SeedSet, gate questionFilter, repo questionInserter, log *zap.Logger) (int, error) {
	total := 0
	for _, set := range sets {
		if set.SourcePDF == "" {
			log.Warn("Skipping seed set without source_pdf", zap.Int("questions", len(set.Questions)))
			continue
		}
		questions := domain.Sanitize(set.Questions, set.SourcePDF)
		fresh := gate.FilterNew(ctx, questions, set.SourcePDF)
		log.Info("Processing seed set",
			zap.String("source_pdf", set.SourcePDF),
			zap.Int("candidates", len(set.Questions)),
			zap.Int("valid", len(questions)),
			zap.Int("new", len(fresh)),
		)
		if len(fresh) == 0 {
			continue
		}
		if repo != nil {
			if err := repo.InsertMany(ctx, fresh); err != nil {
				return total, fmt.Errorf("failed to insert questions for %s: %w", set.SourcePDF, err)
			}
		}
		total += len(fresh)
	}
	return total, nil
}
