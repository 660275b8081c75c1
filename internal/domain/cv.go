package domain

import "time"

type Education struct {
	Degree         string   `json:"degree"`
	Institution    string   `json:"institution"`
	FieldOfStudy   string   `json:"field_of_study"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
}

type Experience struct {
	Position       string     `json:"position"`
	Company        string     `json:"company"`
	DurationMonths int        `json:"duration_months"`
	Description    string     `json:"description"`
	SkillsUsed     []string   `json:"skills_used"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

// CV holds everything extracted from a single résumé. The ID is empty until
// a repository assigns one.
type CV struct {
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename"`
	RawText  string `json:"raw_text"`

	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`

	Skills         []Skill      `json:"skills"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Certifications []string     `json:"certifications"`
	Languages      []string     `json:"languages"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewCV returns a CV with every collection initialized, so callers can
// iterate unconditionally.
func NewCV(filename, rawText string) *CV {
	return &CV{
		Filename:       filename,
		RawText:        rawText,
		Skills:         []Skill{},
		Education:      []Education{},
		Experience:     []Experience{},
		Certifications: []string{},
		Languages:      []string{},
	}
}

// TotalExperienceYears sums all experience durations, in years.
func (c *CV) TotalExperienceYears() float64 {
	months := 0
	for _, exp := range c.Experience {
		months += exp.DurationMonths
	}
	return float64(months) / 12.0
}

func (c *CV) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, skill := range c.Skills {
		names = append(names, skill.Name)
	}
	return names
}
