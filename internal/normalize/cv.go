package normalize

import (
	"time"

	"github.com/mkravets/cv-match/internal/domain"
)

// CV builds a domain.CV from a decoded extraction payload. The original
// raw text is retained on the entity for audit. Sub-records that cannot be
// converted are skipped individually; the conversion itself never fails.
func CV(data map[string]any, rawText string) *domain.CV {
	cv := domain.NewCV("", rawText)

	cv.Name = coerceString(data["name"])
	cv.Email = coerceString(data["email"])
	cv.Phone = coerceString(data["phone"])
	cv.Location = coerceString(data["location"])
	cv.Certifications = coerceStringSlice(data["certifications"])
	cv.Languages = coerceStringSlice(data["languages"])

	for _, record := range records(data, "skills") {
		if skill, ok := skillFromRecord(record); ok {
			cv.Skills = append(cv.Skills, skill)
		}
	}

	for _, record := range records(data, "education") {
		if edu, ok := educationFromRecord(record); ok {
			cv.Education = append(cv.Education, edu)
		}
	}

	for _, record := range records(data, "experience") {
		if exp, ok := experienceFromRecord(record); ok {
			cv.Experience = append(cv.Experience, exp)
		}
	}

	now := time.Now().UTC()
	cv.CreatedAt = &now

	return cv
}

// skillFromRecord converts one skill sub-record. An unrecognized level
// falls back to beginner rather than rejecting the record.
func skillFromRecord(m map[string]any) (domain.Skill, bool) {
	level, ok := domain.ParseSkillLevel(coerceString(m["level"]))
	if !ok {
		level = domain.LevelBeginner
	}

	years, bad := optionalInt(m, "years_experience")
	if bad {
		return domain.Skill{}, false
	}

	return domain.Skill{
		Name:            coerceString(m["name"]),
		Level:           level,
		YearsExperience: years,
		Category:        coerceString(m["category"]),
	}, true
}

func educationFromRecord(m map[string]any) (domain.Education, bool) {
	year, bad := optionalInt(m, "graduation_year")
	if bad {
		return domain.Education{}, false
	}

	gpa, bad := optionalFloat(m, "gpa")
	if bad {
		return domain.Education{}, false
	}

	return domain.Education{
		Degree:         coerceString(m["degree"]),
		Institution:    coerceString(m["institution"]),
		FieldOfStudy:   coerceString(m["field_of_study"]),
		GraduationYear: year,
		GPA:            gpa,
	}, true
}

func experienceFromRecord(m map[string]any) (domain.Experience, bool) {
	months := 0
	if raw, present := m["duration_months"]; present && raw != nil {
		coerced, ok := coerceInt(raw)
		if !ok {
			return domain.Experience{}, false
		}
		months = coerced
	}

	return domain.Experience{
		Position:       coerceString(m["position"]),
		Company:        coerceString(m["company"]),
		DurationMonths: months,
		Description:    coerceString(m["description"]),
		SkillsUsed:     coerceStringSlice(m["skills_used"]),
	}, true
}
