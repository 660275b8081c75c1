package domain

import "time"

// JobRequirement is a single skill a job asks for, with its relative weight
// in scoring. Mandatory requirements default to weight 1.0, preferred
// ones to 0.5.
type JobRequirement struct {
	Skill         string     `json:"skill"`
	RequiredLevel SkillLevel `json:"required_level"`
	IsMandatory   bool       `json:"is_mandatory"`
	Weight        float64    `json:"weight"`
}

// Job holds the analyzed requirements of one job posting. The ID is empty
// until a repository assigns one.
type Job struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`

	RequiredSkills         []JobRequirement `json:"required_skills"`
	PreferredSkills        []JobRequirement `json:"preferred_skills"`
	MinExperienceYears     int              `json:"min_experience_years"`
	RequiredEducation      []string         `json:"required_education"`
	RequiredCertifications []string         `json:"required_certifications"`
	Location               string           `json:"location,omitempty"`
	SalaryRange            string           `json:"salary_range,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewJob returns a Job with every collection initialized.
func NewJob(title, description string) *Job {
	return &Job{
		Title:                  title,
		Description:            description,
		RequiredSkills:         []JobRequirement{},
		PreferredSkills:        []JobRequirement{},
		RequiredEducation:      []string{},
		RequiredCertifications: []string{},
	}
}

func (j *Job) AllRequiredSkillNames() []string {
	names := make([]string, 0, len(j.RequiredSkills))
	for _, req := range j.RequiredSkills {
		names = append(names, req.Skill)
	}
	return names
}

// MandatorySkills returns the subset of required skills marked mandatory.
func (j *Job) MandatorySkills() []JobRequirement {
	mandatory := make([]JobRequirement, 0, len(j.RequiredSkills))
	for _, req := range j.RequiredSkills {
		if req.IsMandatory {
			mandatory = append(mandatory, req)
		}
	}
	return mandatory
}
