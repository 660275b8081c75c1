// Package rules is the deterministic scoring overlay applied on top of the
// collaborator's probabilistic match analysis. Rules run in a fixed order
// and clamp the score at each step; they never fail.
package rules

import (
	"fmt"
	"strings"

	"github.com/mkravets/cv-match/internal/domain"

	"go.uber.org/zap"
)

// Config holds the rule constants. The defaults reproduce the canonical
// behavior; changing them changes every downstream recommendation label.
type Config struct {
	// MandatorySkillPenalty is subtracted from the overall score for each
	// mandatory skill the candidate is missing.
	MandatorySkillPenalty float64 `mapstructure:"mandatory-skill-penalty"`
	// ExperienceBoostPerYear is added per year of experience beyond the
	// job's minimum, up to ExperienceBoostCap.
	ExperienceBoostPerYear float64 `mapstructure:"experience-boost-per-year"`
	ExperienceBoostCap     float64 `mapstructure:"experience-boost-cap"`
}

func DefaultConfig() Config {
	return Config{
		MandatorySkillPenalty:  10,
		ExperienceBoostPerYear: 2,
		ExperienceBoostCap:     10,
	}
}

type Engine struct {
	cfg    Config
	logger *zap.Logger
}

func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Apply refines the analysis in place and returns it. Order is load-bearing:
// the experience boost runs on the already-penalized score, and each step
// clamps independently.
func (e *Engine) Apply(analysis *domain.MatchAnalysis, cv *domain.CV, job *domain.Job) *domain.MatchAnalysis {
	e.applyMandatoryPenalty(analysis, cv, job)
	e.applyExperienceBoost(analysis, cv, job)
	analysis.OverallScore = clamp(analysis.OverallScore, 0, 100)

	analysis.Recommendations = append(analysis.Recommendations, e.recommendations(analysis, cv, job)...)

	return analysis
}

func (e *Engine) applyMandatoryPenalty(analysis *domain.MatchAnalysis, cv *domain.CV, job *domain.Job) {
	cvSkills := make(map[string]struct{}, len(cv.Skills))
	for _, name := range cv.SkillNames() {
		cvSkills[name] = struct{}{}
	}

	missing := 0
	for _, req := range job.MandatorySkills() {
		if _, ok := cvSkills[req.Skill]; !ok {
			missing++
		}
	}

	if missing == 0 {
		return
	}

	penalty := float64(missing) * e.cfg.MandatorySkillPenalty
	before := analysis.OverallScore
	analysis.OverallScore = clamp(before-penalty, 0, 100)

	e.logger.Debug("mandatory-skill penalty applied",
		zap.Int("missing_mandatory", missing),
		zap.Float64("penalty", penalty),
		zap.Float64("score_before", before),
		zap.Float64("score_after", analysis.OverallScore),
	)
}

func (e *Engine) applyExperienceBoost(analysis *domain.MatchAnalysis, cv *domain.CV, job *domain.Job) {
	cvYears := cv.TotalExperienceYears()
	minYears := float64(job.MinExperienceYears)
	if cvYears < minYears {
		return
	}

	boost := (cvYears - minYears) * e.cfg.ExperienceBoostPerYear
	if boost > e.cfg.ExperienceBoostCap {
		boost = e.cfg.ExperienceBoostCap
	}

	before := analysis.OverallScore
	analysis.OverallScore = clamp(before+boost, 0, 100)

	e.logger.Debug("experience boost applied",
		zap.Float64("cv_years", cvYears),
		zap.Float64("boost", boost),
		zap.Float64("score_before", before),
		zap.Float64("score_after", analysis.OverallScore),
	)
}

// recommendations derives gap-specific advice lines. Steps that find
// nothing contribute no line.
func (e *Engine) recommendations(analysis *domain.MatchAnalysis, cv *domain.CV, job *domain.Job) []string {
	var lines []string

	if len(analysis.MissingSkills) > 0 {
		top := analysis.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		lines = append(lines, fmt.Sprintf("Consider learning: %s", strings.Join(top, ", ")))
	}

	if analysis.ExperienceGapYears > 0 {
		lines = append(lines, fmt.Sprintf("Gain %.1f more years of relevant experience", analysis.ExperienceGapYears))
	}

	if uncovered := firstUncoveredEducation(cv, job); uncovered != "" {
		lines = append(lines, fmt.Sprintf("Consider pursuing: %s", uncovered))
	}

	return lines
}

func firstUncoveredEducation(cv *domain.CV, job *domain.Job) string {
	degrees := make(map[string]struct{}, len(cv.Education))
	for _, edu := range cv.Education {
		degrees[strings.ToLower(edu.Degree)] = struct{}{}
	}

	for _, required := range job.RequiredEducation {
		if _, ok := degrees[strings.ToLower(required)]; !ok {
			return required
		}
	}
	return ""
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
