// Package analyzer runs the prompt round trips against the generative
// collaborator and normalizes what comes back into domain entities.
package analyzer

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/mkravets/cv-match/internal/ai"
	"github.com/mkravets/cv-match/internal/domain"
	"github.com/mkravets/cv-match/internal/logger"
	"github.com/mkravets/cv-match/internal/normalize"

	"go.uber.org/zap"
)

//go:embed prompt_cv.md
var cvPromptTemplate string

//go:embed prompt_job.md
var jobPromptTemplate string

//go:embed prompt_match.md
var matchPromptTemplate string

const defaultMaxLogLength = 200

type Analyzer struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func New(generator ai.Generator, log *zap.Logger, maxLogLength int) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// ExtractCV asks the collaborator for structured data from raw résumé text
// and normalizes the answer into a CV entity.
func (a *Analyzer) ExtractCV(ctx context.Context, rawText string) (*domain.CV, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("cv text is required")
	}

	prompt := strings.ReplaceAll(cvPromptTemplate, "{{CV_TEXT}}", rawText)

	data, err := a.roundTrip(ctx, "cv extraction", prompt)
	if err != nil {
		return nil, err
	}

	return normalize.CV(data, rawText), nil
}

// AnalyzeJob extracts requirements from a job description.
func (a *Analyzer) AnalyzeJob(ctx context.Context, description string) (*domain.Job, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("job description is required")
	}

	prompt := strings.ReplaceAll(jobPromptTemplate, "{{JOB_DESCRIPTION}}", description)

	data, err := a.roundTrip(ctx, "job analysis", prompt)
	if err != nil {
		return nil, err
	}

	return normalize.Job(data, description), nil
}

// ScoreMatch asks the collaborator to score the CV against the job. The
// returned analysis is the model's raw judgment; business rules run later.
func (a *Analyzer) ScoreMatch(ctx context.Context, cv *domain.CV, job *domain.Job) (*domain.MatchAnalysis, error) {
	if cv == nil || job == nil {
		return nil, fmt.Errorf("both cv and job are required")
	}

	replacer := strings.NewReplacer(
		"{{CV_SKILLS}}", strings.Join(cv.SkillNames(), ", "),
		"{{CV_EXPERIENCE_YEARS}}", strconv.FormatFloat(cv.TotalExperienceYears(), 'f', 1, 64),
		"{{JOB_SKILLS}}", strings.Join(job.AllRequiredSkillNames(), ", "),
		"{{JOB_EXPERIENCE_YEARS}}", strconv.Itoa(job.MinExperienceYears),
	)
	prompt := replacer.Replace(matchPromptTemplate)

	data, err := a.roundTrip(ctx, "match scoring", prompt)
	if err != nil {
		return nil, err
	}

	cvID := cv.ID
	if cvID == "" {
		cvID = "unknown"
	}
	jobID := job.ID
	if jobID == "" {
		jobID = "unknown"
	}

	return normalize.MatchAnalysis(data, cvID, jobID, a.generator.Model()), nil
}

func (a *Analyzer) roundTrip(ctx context.Context, operation, prompt string) (map[string]any, error) {
	a.logger.Debug("collaborator request",
		zap.String("operation", operation),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	a.logger.Debug("collaborator response",
		zap.String("operation", operation),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	data, err := normalize.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return data, nil
}
