package normalize

import (
	"time"

	"github.com/mkravets/cv-match/internal/domain"
)

const (
	defaultMandatoryWeight = 1.0
	defaultPreferredWeight = 0.5
)

// Job builds a domain.Job from a decoded job-analysis payload. The posting
// description is retained verbatim. Requirement records that cannot be
// converted are skipped individually.
func Job(data map[string]any, description string) *domain.Job {
	job := domain.NewJob(coerceString(data["title"]), description)

	job.Company = coerceString(data["company"])
	job.Location = coerceString(data["location"])
	job.SalaryRange = coerceString(data["salary_range"])
	job.RequiredEducation = coerceStringSlice(data["required_education"])
	job.RequiredCertifications = coerceStringSlice(data["required_certifications"])

	if years, ok := coerceInt(data["min_experience_years"]); ok {
		job.MinExperienceYears = years
	}

	for _, record := range records(data, "required_skills") {
		if req, ok := requirementFromRecord(record, true, defaultMandatoryWeight); ok {
			job.RequiredSkills = append(job.RequiredSkills, req)
		}
	}

	// Preferred requirements are never mandatory, whatever the payload says.
	for _, record := range records(data, "preferred_skills") {
		if req, ok := requirementFromRecord(record, false, defaultPreferredWeight); ok {
			req.IsMandatory = false
			job.PreferredSkills = append(job.PreferredSkills, req)
		}
	}

	now := time.Now().UTC()
	job.CreatedAt = &now

	return job
}

func requirementFromRecord(m map[string]any, defaultMandatory bool, defaultWeight float64) (domain.JobRequirement, bool) {
	level, ok := domain.ParseSkillLevel(coerceString(m["required_level"]))
	if !ok {
		level = domain.LevelBeginner
	}

	mandatory := defaultMandatory
	if raw, present := m["is_mandatory"]; present && raw != nil {
		mandatory = coerceBool(raw)
	}

	weight := defaultWeight
	if w, bad := optionalFloat(m, "weight"); bad {
		return domain.JobRequirement{}, false
	} else if w != nil {
		weight = *w
	}

	return domain.JobRequirement{
		Skill:         coerceString(m["skill"]),
		RequiredLevel: level,
		IsMandatory:   mandatory,
		Weight:        weight,
	}, true
}
