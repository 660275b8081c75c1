package normalize

import (
	"testing"

	"github.com/mkravets/cv-match/internal/domain"
)

func TestCVUnknownSkillLevelFallsBackToBeginner(t *testing.T) {
	data := map[string]any{
		"skills": []any{
			map[string]any{"name": "Go", "level": "ninja"},
		},
	}

	cv := CV(data, "raw text")

	if len(cv.Skills) != 1 {
		t.Fatalf("expected the skill to be kept, got %d skills", len(cv.Skills))
	}

	if cv.Skills[0].Level != domain.LevelBeginner {
		t.Fatalf("expected beginner fallback, got %q", cv.Skills[0].Level)
	}
}

func TestCVSkipsUnconvertibleRecords(t *testing.T) {
	data := map[string]any{
		"experience": []any{
			map[string]any{"position": "Developer", "duration_months": "not a number"},
			map[string]any{"position": "Engineer", "duration_months": float64(24)},
			"not even a map",
		},
		"skills": []any{
			map[string]any{"name": "Go", "level": "advanced", "years_experience": "three"},
			map[string]any{"name": "SQL", "level": "intermediate", "years_experience": float64(3)},
		},
	}

	cv := CV(data, "raw text")

	if len(cv.Experience) != 1 || cv.Experience[0].Position != "Engineer" {
		t.Fatalf("expected only the convertible experience record, got %+v", cv.Experience)
	}

	if len(cv.Skills) != 1 || cv.Skills[0].Name != "SQL" {
		t.Fatalf("expected only the convertible skill record, got %+v", cv.Skills)
	}

	if cv.Skills[0].YearsExperience == nil || *cv.Skills[0].YearsExperience != 3 {
		t.Fatalf("expected 3 years of experience, got %v", cv.Skills[0].YearsExperience)
	}
}

func TestCVDefaultsForMissingFields(t *testing.T) {
	cv := CV(map[string]any{}, "raw text")

	if cv.RawText != "raw text" {
		t.Fatalf("expected raw text to be retained")
	}

	if cv.Name != "" || cv.Email != "" {
		t.Fatalf("expected empty scalar defaults, got name=%q email=%q", cv.Name, cv.Email)
	}

	if cv.Skills == nil || len(cv.Skills) != 0 {
		t.Fatalf("expected empty skills list, got %v", cv.Skills)
	}

	if cv.Certifications == nil || cv.Languages == nil {
		t.Fatalf("expected empty certification and language lists")
	}

	if cv.CreatedAt == nil {
		t.Fatalf("expected created_at to be stamped")
	}
}

func TestCVNumericStringsAreAccepted(t *testing.T) {
	data := map[string]any{
		"experience": []any{
			map[string]any{"position": "Developer", "duration_months": "24"},
		},
	}

	cv := CV(data, "raw text")

	if len(cv.Experience) != 1 || cv.Experience[0].DurationMonths != 24 {
		t.Fatalf("expected duration 24 from numeric string, got %+v", cv.Experience)
	}
}

func TestCVEducationRecords(t *testing.T) {
	data := map[string]any{
		"education": []any{
			map[string]any{
				"degree":          "BSc",
				"institution":     "State University",
				"field_of_study":  "Computer Science",
				"graduation_year": float64(2020),
			},
			map[string]any{"degree": "MSc", "gpa": "not numeric"},
		},
	}

	cv := CV(data, "raw text")

	if len(cv.Education) != 1 {
		t.Fatalf("expected one education record, got %d", len(cv.Education))
	}

	edu := cv.Education[0]
	if edu.Degree != "BSc" || edu.GraduationYear == nil || *edu.GraduationYear != 2020 {
		t.Fatalf("unexpected education record: %+v", edu)
	}
}
