package normalize

import (
	"time"

	"github.com/mkravets/cv-match/internal/domain"
)

// MatchAnalysis builds a domain.MatchAnalysis from a decoded matching
// payload. Per-skill levels stay nil when unrecognized: in a skill match
// "unknown" is meaningful and must not collapse to beginner.
func MatchAnalysis(data map[string]any, cvID, jobID, model string) *domain.MatchAnalysis {
	analysis := domain.NewMatchAnalysis(cvID, jobID)

	analysis.OverallScore, _ = coerceFloat(data["overall_score"])
	analysis.SkillsScore, _ = coerceFloat(data["skills_score"])
	analysis.ExperienceScore, _ = coerceFloat(data["experience_score"])
	analysis.EducationScore, _ = coerceFloat(data["education_score"])
	analysis.ExperienceGapYears, _ = coerceFloat(data["experience_gap_years"])

	analysis.MissingSkills = coerceStringSlice(data["missing_skills"])
	analysis.MatchingSkills = coerceStringSlice(data["matching_skills"])
	analysis.Recommendations = coerceStringSlice(data["recommendations"])
	analysis.InterviewTips = coerceStringSlice(data["interview_tips"])

	for _, record := range records(data, "skill_matches") {
		if match, ok := skillMatchFromRecord(record); ok {
			analysis.SkillMatches = append(analysis.SkillMatches, match)
		}
	}

	now := time.Now().UTC()
	analysis.AnalysisDate = &now
	analysis.AIModelUsed = model

	return analysis
}

func skillMatchFromRecord(m map[string]any) (domain.SkillMatch, bool) {
	score, bad := optionalFloat(m, "match_score")
	if bad {
		return domain.SkillMatch{}, false
	}

	match := domain.SkillMatch{
		SkillName:   coerceString(m["skill_name"]),
		CVHasSkill:  coerceBool(m["cv_has_skill"]),
		GapAnalysis: coerceString(m["gap_analysis"]),
	}
	if score != nil {
		match.MatchScore = *score
	}

	if level, ok := domain.ParseSkillLevel(coerceString(m["cv_skill_level"])); ok {
		match.CVSkillLevel = &level
	}
	if level, ok := domain.ParseSkillLevel(coerceString(m["required_level"])); ok {
		match.RequiredLevel = &level
	}

	return match, true
}
