package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pagescout/internal/common"
	"github.com/dmitrijs2005/pagescout/internal/logging"
	"github.com/dmitrijs2005/pagescout/internal/server/extraction"
	"github.com/dmitrijs2005/pagescout/internal/server/fetcher"
	"github.com/dmitrijs2005/pagescout/internal/server/metrics"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
	"github.com/google/uuid"
)

// Stage is a step of an analyze run. Runs move forward through
// AwaitingAuth, Fetching, Inferring and Parsing to Done, or stop at the
// first failing stage.
type Stage string

const (
	StageAwaitingAuth Stage = "awaiting_auth"
	StageFetching     Stage = "fetching"
	StageInferring    Stage = "inferring"
	StageParsing      Stage = "parsing"
	StageDone         Stage = "done"
)

// AnalyzeError reports the stage an analyze run failed in. The wrapped
// error carries the kind (common.ErrFetch, common.ErrTokenExpired, ...).
type AnalyzeError struct {
	Stage Stage
	Err   error
}

func (e *AnalyzeError) Error() string {
	return fmt.Sprintf("analyze failed while %s: %v", e.Stage, e.Err)
}

func (e *AnalyzeError) Unwrap() error { return e.Err }

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type ContentFetcher interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// AnalyzeService runs fetch, extraction and parsing for one URL at a time.
// It keeps no state between runs.
type AnalyzeService struct {
	tokens    TokenVerifier
	fetcher   ContentFetcher
	extractor extraction.Extractor
	normalize func(string) string
	parse     func(string) (*models.ExtractedRecord, error)
	logger    logging.Logger
	metrics   *metrics.Metrics
	timeout   time.Duration
}

// NewAnalyzeService wires the pipeline. A zero timeout leaves the caller's
// context deadline as the only bound.
func NewAnalyzeService(tokens TokenVerifier, f ContentFetcher, x extraction.Extractor,
	logger logging.Logger, m *metrics.Metrics, timeout time.Duration) *AnalyzeService {
	return &AnalyzeService{
		tokens:    tokens,
		fetcher:   f,
		extractor: x,
		normalize: fetcher.Normalize,
		parse:     extraction.ParseRecord,
		logger:    logger.With("module", "analyze"),
		metrics:   m,
		timeout:   timeout,
	}
}

// ensureKind wraps err with kind unless it already carries it.
func ensureKind(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func newRunID() string {
	return "an_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (s *AnalyzeService) fail(ctx context.Context, log logging.Logger, started time.Time,
	stage Stage, err error) (*models.ExtractedRecord, error) {
	s.metrics.IncAnalyze("failed", string(stage))
	log.Warn(ctx, "analyze failed",
		"stage", string(stage),
		"kind", common.Kind(err),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return nil, &AnalyzeError{Stage: stage, Err: err}
}

// Authorize runs the AwaitingAuth stage on its own and returns the token's
// username. Failures come back as an *AnalyzeError.
func (s *AnalyzeService) Authorize(ctx context.Context, token string) (string, error) {
	started := time.Now()
	username, err := s.tokens.Verify(token)
	s.metrics.ObserveStage(string(StageAwaitingAuth), time.Since(started))
	if err != nil {
		s.metrics.IncAuthFailure(common.Kind(err))
		_, err = s.fail(ctx, s.logger, started, StageAwaitingAuth, err)
		return "", err
	}
	return username, nil
}

// Analyze verifies token, then fetches targetURL, asks the model for a
// record and parses the answer. Nothing is returned but the record or an
// *AnalyzeError.
func (s *AnalyzeService) Analyze(ctx context.Context, token, targetURL string) (*models.ExtractedRecord, error) {
	username, err := s.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeFor(ctx, username, targetURL)
}

// AnalyzeFor runs the stages after AwaitingAuth for a caller already
// authorized as username.
func (s *AnalyzeService) AnalyzeFor(ctx context.Context, username, targetURL string) (*models.ExtractedRecord, error) {
	log := s.logger.With("analyze_id", newRunID())
	started := time.Now()

	fail := func(stage Stage, err error) (*models.ExtractedRecord, error) {
		return s.fail(ctx, log, started, stage, err)
	}

	targetURL = strings.TrimSpace(targetURL)
	if targetURL == "" {
		return fail(StageFetching, fmt.Errorf("%w: url is required", common.ErrInvalidInput))
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Info(ctx, "analyze started", "user", username, "url", targetURL)

	stageStart := time.Now()
	content, err := s.fetcher.Fetch(ctx, targetURL)
	s.metrics.ObserveStage(string(StageFetching), time.Since(stageStart))
	if err != nil {
		return fail(StageFetching, ensureKind(err, common.ErrFetch))
	}
	content = s.normalize(content)
	log.Debug(ctx, "content fetched", "content_bytes", len(content), "duration_ms", time.Since(stageStart).Milliseconds())

	stageStart = time.Now()
	raw, err := s.extractor.Extract(ctx, content)
	s.metrics.ObserveStage(string(StageInferring), time.Since(stageStart))
	if err != nil {
		return fail(StageInferring, ensureKind(err, common.ErrInference))
	}
	log.Debug(ctx, "model answered", "response_bytes", len(raw), "duration_ms", time.Since(stageStart).Milliseconds())

	stageStart = time.Now()
	record, err := s.parse(raw)
	s.metrics.ObserveStage(string(StageParsing), time.Since(stageStart))
	if err != nil {
		return fail(StageParsing, ensureKind(err, common.ErrParse))
	}

	s.metrics.IncAnalyze("success", string(StageDone))
	log.Info(ctx, "analyze finished", "duration_ms", time.Since(started).Milliseconds())
	return record, nil
}
