package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SkipReasonDownload   = "download failed"
	SkipReasonExtraction = "extraction failed"
	SkipReasonEmptyText  = "empty text"
	SkipReasonLocked     = "locked"
	SkipReasonPanic      = "panic"
)

// PipelineConfig holds the tunables of one pipeline.
type PipelineConfig struct {
	MaxDocuments   int
	MaxPerDocument int
	RescaleFloor   int
	Distribution   domain.DistributionPolicy
	PacingDelay    time.Duration
	Concurrency    int
	LockTTL        time.Duration
	IndexTimeout   time.Duration
}

// PipelineConfigFrom maps the application configuration.
func PipelineConfigFrom(cfg *config.Config) PipelineConfig {
	return PipelineConfig{
		MaxDocuments:   cfg.Agent.MaxFiles,
		MaxPerDocument: cfg.Agent.MaxQuestionsPerFile,
		RescaleFloor:   cfg.Generation.RescaleFloor,
		Distribution: domain.DistributionPolicy{
			Total: cfg.Generation.DistributionTotal,
			Floor: cfg.Generation.DistributionFloor,
		},
		PacingDelay:  cfg.Agent.PacingDelay,
		Concurrency:  cfg.Agent.Concurrency,
		LockTTL:      cfg.Agent.LockTTL,
		IndexTimeout: cfg.Vector.Timeout,
	}
}

func (c PipelineConfig) withDefaults() PipelineConfig {
	if c.MaxDocuments <= 0 {
		c.MaxDocuments = 50
	}
	if c.MaxPerDocument <= 0 {
		c.MaxPerDocument = 48
	}
	if c.RescaleFloor <= 0 {
		c.RescaleFloor = 4
	}
	if c.Distribution.Total <= 0 {
		c.Distribution = domain.DefaultDistributionPolicy
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.LockTTL <= 0 {
		c.LockTTL = 5 * time.Minute
	}
	if c.IndexTimeout <= 0 {
		c.IndexTimeout = 30 * time.Second
	}
	return c
}

// PipelineDeps are the collaborators of the pipeline. Strategies are tried in order
// before Heuristic, which is required. Locker and Indexer are optional.
type PipelineDeps struct {
	Store      domain.DocumentStore
	Normalizer *ContentNormalizer
	Strategies []domain.QuestionGenerator
	Heuristic  domain.QuestionGenerator
	Gate       *DedupGate
	Questions  domain.QuestionRepository
	Locker     domain.SourceLocker
	Indexer    domain.QuestionIndexer
}

// PipelineService turns source documents into stored questions.
type PipelineService struct {
	deps   PipelineDeps
	cfg    PipelineConfig
	logger *zap.Logger

	indexWG sync.WaitGroup
	sleep   func(ctx context.Context, d time.Duration) error

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewPipelineService(deps PipelineDeps, cfg PipelineConfig, logger *zap.Logger) (*PipelineService, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("pipeline requires a document store")
	case deps.Normalizer == nil:
		return nil, errors.New("pipeline requires a content normalizer")
	case deps.Heuristic == nil:
		return nil, errors.New("pipeline requires the heuristic strategy")
	case deps.Gate == nil:
		return nil, errors.New("pipeline requires a dedup gate")
	case deps.Questions == nil:
		return nil, errors.New("pipeline requires a question repository")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineService{
		deps:   deps,
		cfg:    cfg.withDefaults(),
		logger: logger,
		sleep:  sleepContext,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// ProcessDocument downloads sourceID and runs it through the pipeline. Download and
// extraction failures skip the document and are returned.
func (p *PipelineService) ProcessDocument(ctx context.Context, sourceID string) (domain.ProcessingOutcome, error) {
	raw, err := p.deps.Store.Download(ctx, sourceID)
	if err != nil {
		return skipped(sourceID, SkipReasonDownload), err
	}
	outcome, _, err := p.process(ctx, sourceID, raw)
	return outcome, err
}

// ProcessContent runs the pipeline on uploaded bytes and reports the questions that
// were new for the source, with their summary and test sets.
func (p *PipelineService) ProcessContent(ctx context.Context, sourceID string, raw []byte) (*domain.GenerationResult, error) {
	outcome, questions, err := p.process(ctx, sourceID, raw)
	if err != nil {
		return nil, err
	}

	p.rngMu.Lock()
	sets := domain.BuildTestSets(questions, p.rng)
	p.rngMu.Unlock()

	return &domain.GenerationResult{
		Outcome:   outcome,
		Questions: questions,
		Summary:   domain.Summarize(questions, outcome.Strategy == domain.HeuristicStrategyName),
		TestSets:  sets,
	}, nil
}

func (p *PipelineService) process(ctx context.Context, sourceID string, raw []byte) (domain.ProcessingOutcome, []domain.Question, error) {
	log := p.logger.With(zap.String("source_pdf", sourceID))

	text, err := p.deps.Normalizer.Normalize(ctx, raw)
	if err != nil {
		return skipped(sourceID, SkipReasonExtraction), nil, err
	}
	if text.IsEmpty() {
		log.Info("No text extracted, skipping document")
		return skipped(sourceID, SkipReasonEmptyText), nil, nil
	}

	target := domain.ComputeDistributionWith(text, p.cfg.Distribution).Rescale(p.cfg.MaxPerDocument, p.cfg.RescaleFloor)
	questions, strategy := p.generate(ctx, text, sourceID, target)
	outcome := domain.ProcessingOutcome{SourceID: sourceID, Generated: len(questions), Strategy: strategy}
	log.Info("Questions generated",
		zap.String("strategy", strategy),
		zap.Int("count", len(questions)),
		zap.Int("expert", target.Expert),
		zap.Int("master", target.Master),
		zap.Int("champion", target.Champion),
	)
	if len(questions) == 0 {
		return outcome, nil, nil
	}

	if p.deps.Locker != nil {
		unlock, ok, err := p.deps.Locker.Acquire(ctx, sourceID, p.cfg.LockTTL)
		switch {
		case err != nil:
			log.Warn("Source lock unavailable, continuing unlocked", zap.Error(err))
		case !ok:
			log.Info("Source is being processed elsewhere, skipping")
			outcome.Skipped = true
			outcome.SkipReason = SkipReasonLocked
			return outcome, nil, nil
		default:
			defer unlock()
		}
	}

	fresh := p.deps.Gate.FilterNew(ctx, questions, sourceID)
	if len(fresh) == 0 {
		log.Info("All generated questions already stored")
		return outcome, nil, nil
	}
	if err := p.deps.Questions.InsertMany(ctx, fresh); err != nil {
		log.Error("Failed to insert questions", zap.Int("count", len(fresh)), zap.Error(err))
		return outcome, nil, nil
	}
	outcome.Inserted = len(fresh)
	log.Info("Questions inserted", zap.Int("count", len(fresh)))

	p.index(sourceID, fresh)
	return outcome, fresh, nil
}

// generate tries each AI strategy in order. The first non-empty sanitized result wins;
// the heuristic runs when every AI strategy failed or returned nothing usable.
func (p *PipelineService) generate(ctx context.Context, text domain.NormalizedText, sourceID string, target domain.DifficultyTarget) ([]domain.Question, string) {
	for _, g := range p.deps.Strategies {
		candidates, err := g.Generate(ctx, text, sourceID, target)
		if err != nil {
			p.logger.Warn("Generation strategy failed",
				zap.String("strategy", g.Name()),
				zap.String("source_pdf", sourceID),
				zap.Error(err),
			)
			continue
		}
		if questions := domain.Sanitize(candidates, sourceID); len(questions) > 0 {
			return questions, g.Name()
		}
		p.logger.Info("Generation strategy returned no valid questions",
			zap.String("strategy", g.Name()),
			zap.String("source_pdf", sourceID),
		)
	}

	h := p.deps.Heuristic
	candidates, err := h.Generate(ctx, text, sourceID, target)
	if err != nil {
		p.logger.Error("Heuristic strategy failed", zap.String("source_pdf", sourceID), zap.Error(err))
	}
	return domain.Sanitize(candidates, sourceID), h.Name()
}

// index hands persisted questions to the indexer without blocking the pipeline.
func (p *PipelineService) index(sourceID string, questions []domain.Question) {
	if p.deps.Indexer == nil {
		return
	}
	p.indexWG.Add(1)
	go func() {
		defer p.indexWG.Done()
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("Question indexer panicked", zap.String("source_pdf", sourceID), zap.Any("panic", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.IndexTimeout)
		defer cancel()
		if err := p.deps.Indexer.IndexQuestions(ctx, sourceID, questions); err != nil {
			p.logger.Warn("Failed to index questions", zap.String("source_pdf", sourceID), zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight index calls are done.
func (p *PipelineService) Wait() {
	p.indexWG.Wait()
}

// RunPass lists up to MaxDocuments documents and processes each one. Failures skip
// the document; the pass never aborts early unless ctx is cancelled.
func (p *PipelineService) RunPass(ctx context.Context) domain.PassReport {
	var report domain.PassReport

	ids, err := p.deps.Store.List(ctx, p.cfg.MaxDocuments)
	if err != nil {
		p.logger.Error("Failed to list documents", zap.Error(err))
		return report
	}
	if len(ids) > p.cfg.MaxDocuments {
		ids = ids[:p.cfg.MaxDocuments]
	}
	report.Listed = len(ids)
	p.logger.Info("Pass started", zap.Int("documents", len(ids)))

	if p.cfg.Concurrency <= 1 {
		for i, id := range ids {
			if ctx.Err() != nil {
				break
			}
			if i > 0 {
				if err := p.sleep(ctx, p.cfg.PacingDelay); err != nil {
					break
				}
			}
			report.Add(p.safeProcess(ctx, id))
		}
	} else {
		report.Outcomes = make([]domain.ProcessingOutcome, 0, len(ids))
		outcomes := make([]*domain.ProcessingOutcome, len(ids))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.cfg.Concurrency)
		for i, id := range ids {
			if gctx.Err() != nil {
				break
			}
			if i > 0 && p.sleep(gctx, p.cfg.PacingDelay) != nil {
				break
			}
			g.Go(func() error {
				o := p.safeProcess(gctx, id)
				outcomes[i] = &o
				return nil
			})
		}
		_ = g.Wait()
		for _, o := range outcomes {
			if o != nil {
				report.Add(*o)
			}
		}
	}

	p.logger.Info("Pass finished",
		zap.Int("listed", report.Listed),
		zap.Int("processed", report.Processed),
		zap.Int("skipped", report.Skipped),
		zap.Int("inserted", report.Inserted),
	)
	return report
}

// safeProcess turns errors and panics into a skipped outcome.
func (p *PipelineService) safeProcess(ctx context.Context, id string) (outcome domain.ProcessingOutcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Document processing panicked", zap.String("source_pdf", id), zap.Any("panic", r))
			outcome = skipped(id, SkipReasonPanic)
		}
	}()

	outcome, err := p.ProcessDocument(ctx, id)
	if err != nil {
		p.logger.Warn("Document skipped",
			zap.String("source_pdf", id),
			zap.String("reason", outcome.SkipReason),
			zap.Error(err),
		)
		if !outcome.Skipped {
			outcome = skipped(id, fmt.Sprintf("error: %v", err))
		}
	}
	return outcome
}

func skipped(sourceID, reason string) domain.ProcessingOutcome {
	return domain.ProcessingOutcome{SourceID: sourceID, Skipped: true, SkipReason: reason}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ domain.PipelineService = (*PipelineService)(nil)
