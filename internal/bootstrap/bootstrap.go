// Package bootstrap assembles the pipeline and services from configuration. It is
// shared by the agent and API binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"istqb-quiz/internal/adapter"
	"istqb-quiz/internal/adapter/docstore"
	"istqb-quiz/internal/adapter/embedding"
	"istqb-quiz/internal/adapter/extractor"
	"istqb-quiz/internal/adapter/quizgen"
	"istqb-quiz/internal/adapter/vectorindex"
	"istqb-quiz/internal/cache"
	"istqb-quiz/internal/config"
	"istqb-quiz/internal/database"
	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/repository"
	"istqb-quiz/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds the wired components. Close releases them in reverse order.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	DB          *sqlx.DB
	Redis       *redis.Client
	Cache       domain.Cache
	Store       domain.DocumentStore
	Strategies  quizgen.Strategies
	Questions   domain.QuestionRepository
	Exams       domain.ExamRepository
	Gate        *service.DedupGate
	Pipeline    *service.PipelineService
	QuestionSvc service.QuestionService
	ExamSvc     domain.ExamService

	closers []func() error
}

// New connects every configured dependency. Optional ones (Redis, embeddings, Qdrant,
// AI providers) are skipped with a log line when not configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}
	if err := c.init(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) init(ctx context.Context) error {
	cfg, logger := c.Config, c.Logger

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	c.closers = append(c.closers, db.Close)
	logger.Info("Database connected", zap.String("driver", cfg.DB.Driver))

	var locker domain.SourceLocker = adapter.NewMemorySourceLocker()
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			c.Redis = client
			c.closers = append(c.closers, client.Close)
			c.Cache = adapter.NewRedisCacheAdapter(client)
			locker = adapter.NewRedisSourceLocker(client)
			logger.Info("Redis connected", zap.String("address", cfg.Redis.Address))
		}
	}

	store, err := docstore.NewFromConfig(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}
	c.Store = store
	if closer, ok := store.(interface{ Close() error }); ok {
		c.closers = append(c.closers, closer.Close)
	}

	embedder, err := embedding.NewFromConfig(cfg, c.Cache, logger)
	if err != nil {
		return fmt.Errorf("failed to create embedding service: %w", err)
	}

	var indexer domain.QuestionIndexer
	if cfg.Vector.QdrantURL != "" {
		if embedder == nil {
			logger.Warn("Qdrant configured without embedding.source, question indexing disabled")
		} else {
			qi, err := vectorindex.NewQdrantQuestionIndexer(cfg.Vector.QdrantURL, cfg.Vector.QdrantAPIKey, cfg.Vector.Collection, embedder, logger)
			if err != nil {
				return err
			}
			indexer = qi
		}
	}

	strategies, err := quizgen.NewStrategiesFromConfig(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to configure generation strategies: %w", err)
	}
	c.Strategies = strategies
	c.closers = append(c.closers, func() error { strategies.Close(); return nil })
	logger.Info("Generation strategies configured", zap.Strings("order", strategies.Names()))

	c.Questions = repository.NewQuestionDatabaseAdapter(db)
	c.Exams = repository.NewExamDatabaseAdapter(db)

	var semantic domain.EmbeddingService
	if embedder != nil {
		semantic = embedder
	}
	c.Gate = service.NewDedupGate(c.Questions, semantic, cfg.Dedup, logger)
	pipeline, err := service.NewPipelineService(service.PipelineDeps{
		Store:      store,
		Normalizer: service.NewContentNormalizer(extractor.NewPDFTextExtractor(logger)),
		Strategies: strategies.AI,
		Heuristic:  strategies.Heuristic,
		Gate:       c.Gate,
		Questions:  c.Questions,
		Locker:     locker,
		Indexer:    indexer,
	}, service.PipelineConfigFrom(cfg), logger)
	if err != nil {
		return err
	}
	c.Pipeline = pipeline
	c.QuestionSvc = service.NewQuestionService(c.Questions)
	c.ExamSvc = service.NewExamService(c.Questions, c.Exams, logger)
	return nil
}

// Close waits for background indexing and releases resources.
func (c *Container) Close() error {
	if c.Pipeline != nil {
		c.Pipeline.Wait()
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
