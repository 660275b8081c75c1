package domain

import "time"

// MatchStatus is the lifecycle state of a matching session.
type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchFailed     MatchStatus = "failed"
)

// Recommendation labels derived from the overall score.
const (
	HighlyRecommended   = "Highly Recommended"
	Recommended         = "Recommended"
	ConsiderWithCaution = "Consider with Caution"
	NotRecommended      = "Not Recommended"
)

// SkillMatch resolves one job requirement against the candidate. A nil
// level means the collaborator could not determine it; that absence is
// meaningful and is never defaulted.
type SkillMatch struct {
	SkillName     string      `json:"skill_name"`
	CVHasSkill    bool        `json:"cv_has_skill"`
	CVSkillLevel  *SkillLevel `json:"cv_skill_level,omitempty"`
	RequiredLevel *SkillLevel `json:"required_level,omitempty"`
	MatchScore    float64     `json:"match_score"`
	GapAnalysis   string      `json:"gap_analysis,omitempty"`
}

// MatchAnalysis is the scored outcome of comparing one CV to one job.
// Scores are on a 0-100 scale, per-skill match scores on 0-1.
type MatchAnalysis struct {
	CVID  string `json:"cv_id"`
	JobID string `json:"job_id"`

	OverallScore    float64 `json:"overall_score"`
	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`

	SkillMatches       []SkillMatch `json:"skill_matches"`
	MissingSkills      []string     `json:"missing_skills"`
	MatchingSkills     []string     `json:"matching_skills"`
	ExperienceGapYears float64      `json:"experience_gap_years"`

	Recommendations []string `json:"recommendations"`
	InterviewTips   []string `json:"interview_tips"`

	AnalysisDate *time.Time `json:"analysis_date,omitempty"`
	AIModelUsed  string     `json:"ai_model_used,omitempty"`
}

// NewMatchAnalysis returns a MatchAnalysis with every collection initialized.
func NewMatchAnalysis(cvID, jobID string) *MatchAnalysis {
	return &MatchAnalysis{
		CVID:            cvID,
		JobID:           jobID,
		SkillMatches:    []SkillMatch{},
		MissingSkills:   []string{},
		MatchingSkills:  []string{},
		Recommendations: []string{},
		InterviewTips:   []string{},
	}
}

// Match binds one CV to one job and tracks the analysis through its
// lifecycle.
type Match struct {
	ID     string      `json:"id,omitempty"`
	CVID   string      `json:"cv_id"`
	JobID  string      `json:"job_id"`
	Status MatchStatus `json:"status"`

	Analysis     *MatchAnalysis `json:"analysis,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`

	CreatedAt             *time.Time `json:"created_at,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	ProcessingTimeSeconds float64    `json:"processing_time_seconds,omitempty"`
}

func NewMatch(cvID, jobID string) *Match {
	return &Match{
		CVID:   cvID,
		JobID:  jobID,
		Status: MatchPending,
	}
}

// IsCompleted reports whether the session finished with an analysis in hand.
func (m *Match) IsCompleted() bool {
	return m.Status == MatchCompleted && m.Analysis != nil
}

// RecommendationLevel maps the overall score to a four-tier label.
// Thresholds are inclusive: exactly 80 is "Highly Recommended".
func (m *Match) RecommendationLevel() string {
	if m.Analysis == nil {
		return "Unknown"
	}

	score := m.Analysis.OverallScore
	switch {
	case score >= 80:
		return HighlyRecommended
	case score >= 60:
		return Recommended
	case score >= 40:
		return ConsiderWithCaution
	default:
		return NotRecommended
	}
}
