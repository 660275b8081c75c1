// Package matching drives the CV-to-job scoring workflow: it fetches the
// entities, asks the analyzer for an AI assessment, layers the business
// rules on top and persists the match through its lifecycle.
package matching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkravets/cv-match/internal/analyzer"
	"github.com/mkravets/cv-match/internal/domain"
	"github.com/mkravets/cv-match/internal/repository"
	"github.com/mkravets/cv-match/internal/rules"
	"github.com/mkravets/cv-match/internal/validation"
)

// Service coordinates the analyzer, the rule engine and the repositories.
type Service struct {
	analyzer *analyzer.Analyzer
	engine   *rules.Engine

	cvs     repository.CVRepository
	jobs    repository.JobRepository
	matches repository.MatchRepository

	logger *zap.Logger
}

func NewService(
	a *analyzer.Analyzer,
	engine *rules.Engine,
	cvs repository.CVRepository,
	jobs repository.JobRepository,
	matches repository.MatchRepository,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		analyzer: a,
		engine:   engine,
		cvs:      cvs,
		jobs:     jobs,
		matches:  matches,
		logger:   log,
	}
}

// IngestCV runs AI extraction over raw CV text and stores the result.
func (s *Service) IngestCV(ctx context.Context, filename, rawText string) (*domain.CV, error) {
	cv, err := s.analyzer.ExtractCV(ctx, rawText)
	if err != nil {
		return nil, err
	}
	cv.Filename = filename

	if violations := validation.CheckCV(cv); len(violations) > 0 {
		return nil, fmt.Errorf("invalid CV: %s", strings.Join(violations, "; "))
	}

	return s.cvs.Save(ctx, cv)
}

// IngestJob runs AI analysis over a job description and stores the result.
func (s *Service) IngestJob(ctx context.Context, description string) (*domain.Job, error) {
	job, err := s.analyzer.AnalyzeJob(ctx, description)
	if err != nil {
		return nil, err
	}

	if violations := validation.CheckJob(job); len(violations) > 0 {
		return nil, fmt.Errorf("invalid job: %s", strings.Join(violations, "; "))
	}

	return s.jobs.Save(ctx, job)
}

// Analyze scores a CV against a job: the AI assessment first, then the
// deterministic rule adjustments on top of it.
func (s *Service) Analyze(ctx context.Context, cv *domain.CV, job *domain.Job) (*domain.MatchAnalysis, error) {
	analysis, err := s.analyzer.ScoreMatch(ctx, cv, job)
	if err != nil {
		return nil, err
	}
	return s.engine.Apply(analysis, cv, job), nil
}

// Run executes a full matching session for two stored entities. The match
// record is persisted at every state transition, so a failed run leaves a
// failed match behind rather than nothing.
func (s *Service) Run(ctx context.Context, cvID, jobID string) (*domain.Match, error) {
	if violations := validation.CheckMatchRequest(cvID, jobID); len(violations) > 0 {
		return nil, fmt.Errorf("invalid match request: %s", strings.Join(violations, "; "))
	}

	cv, err := s.cvs.FindByID(ctx, cvID)
	if err != nil {
		return nil, fmt.Errorf("load CV %s: %w", cvID, err)
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job %s: %w", jobID, err)
	}

	match, err := s.matches.Save(ctx, domain.NewMatch(cvID, jobID))
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	match.Status = domain.MatchInProgress
	if match, err = s.matches.Save(ctx, match); err != nil {
		return nil, fmt.Errorf("update match: %w", err)
	}

	started := time.Now()
	analysis, analyzeErr := s.Analyze(ctx, cv, job)
	match.ProcessingTimeSeconds = time.Since(started).Seconds()

	if analyzeErr != nil {
		match.Status = domain.MatchFailed
		match.ErrorMessage = analyzeErr.Error()
		s.logger.Warn("matching failed",
			zap.String("cv_id", cvID),
			zap.String("job_id", jobID),
			zap.Error(analyzeErr),
		)
		if _, saveErr := s.matches.Save(ctx, match); saveErr != nil {
			return nil, fmt.Errorf("record failure: %w", saveErr)
		}
		return match, analyzeErr
	}

	now := time.Now().UTC()
	match.Status = domain.MatchCompleted
	match.Analysis = analysis
	match.CompletedAt = &now

	if match, err = s.matches.Save(ctx, match); err != nil {
		return nil, fmt.Errorf("store result: %w", err)
	}

	s.logger.Info("matching completed",
		zap.String("match_id", match.ID),
		zap.Float64("overall_score", analysis.OverallScore),
		zap.Float64("seconds", match.ProcessingTimeSeconds),
	)
	return match, nil
}
