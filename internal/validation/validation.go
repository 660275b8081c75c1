// Package validation checks entity and request invariants. Every check is
// pure and accumulates all violations instead of stopping at the first;
// callers decide whether a non-empty result is fatal.
package validation

import (
	"strings"

	"github.com/mkravets/cv-match/internal/domain"
)

// CheckCV returns a violation message per broken CV invariant.
func CheckCV(cv *domain.CV) []string {
	violations := []string{}

	if strings.TrimSpace(cv.RawText) == "" {
		violations = append(violations, "CV must contain text content")
	}

	if cv.Filename == "" {
		violations = append(violations, "CV must have a filename")
	}

	return violations
}

// CheckJob returns a violation message per broken Job invariant.
func CheckJob(job *domain.Job) []string {
	violations := []string{}

	if strings.TrimSpace(job.Title) == "" {
		violations = append(violations, "Job must have a title")
	}

	if strings.TrimSpace(job.Description) == "" {
		violations = append(violations, "Job must have a description")
	}

	if job.MinExperienceYears < 0 {
		violations = append(violations, "Minimum experience years cannot be negative")
	}

	return violations
}

// CheckMatchRequest validates the identifier pair of a match request.
func CheckMatchRequest(cvID, jobID string) []string {
	violations := []string{}

	if strings.TrimSpace(cvID) == "" {
		violations = append(violations, "CV ID is required")
	}

	if strings.TrimSpace(jobID) == "" {
		violations = append(violations, "Job ID is required")
	}

	return violations
}
