package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkravets/cv-match/internal/ai"
	"github.com/mkravets/cv-match/internal/domain"
	"github.com/mkravets/cv-match/internal/normalize"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestExtractCV(t *testing.T) {
	stub := &stubGenerator{response: `Here you go:
{"name": "Jane Doe", "skills": [{"name": "Go", "level": "expert"}]}`}

	a := New(stub, zap.NewNop(), 0)

	cv, err := a.ExtractCV(context.Background(), "raw resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cv.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", cv.Name)
	}

	if cv.RawText != "raw resume text" {
		t.Fatalf("expected raw text to be retained")
	}

	if len(cv.Skills) != 1 || cv.Skills[0].Level != domain.LevelExpert {
		t.Fatalf("unexpected skills: %+v", cv.Skills)
	}

	if !strings.Contains(stub.lastPrompt, "raw resume text") {
		t.Fatalf("expected cv text in prompt")
	}
}

func TestExtractCVMalformedResponse(t *testing.T) {
	stub := &stubGenerator{response: "I cannot help with that."}

	a := New(stub, zap.NewNop(), 0)

	_, err := a.ExtractCV(context.Background(), "raw resume text")
	if err == nil {
		t.Fatalf("expected error")
	}

	var malformed *normalize.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestExtractCVTransportErrorPassesThrough(t *testing.T) {
	stub := &stubGenerator{err: &ai.TransportError{Provider: "stub", Err: errors.New("boom")}}

	a := New(stub, zap.NewNop(), 0)

	_, err := a.ExtractCV(context.Background(), "raw resume text")

	var transport *ai.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected transport error, got %T: %v", err, err)
	}
}

func TestAnalyzeJob(t *testing.T) {
	stub := &stubGenerator{response: `{"title": "Backend Engineer", "required_skills": [{"skill": "Go", "required_level": "advanced"}], "min_experience_years": 3}`}

	a := New(stub, zap.NewNop(), 0)

	job, err := a.AnalyzeJob(context.Background(), "job posting text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.Title != "Backend Engineer" || job.MinExperienceYears != 3 {
		t.Fatalf("unexpected job: %+v", job)
	}

	if job.Description != "job posting text" {
		t.Fatalf("expected description to be retained")
	}

	if !strings.Contains(stub.lastPrompt, "job posting text") {
		t.Fatalf("expected description in prompt")
	}
}

func TestScoreMatch(t *testing.T) {
	stub := &stubGenerator{response: `{"overall_score": 75.5, "missing_skills": ["Docker"]}`}

	a := New(stub, zap.NewNop(), 0)

	cv := domain.NewCV("resume.pdf", "text")
	cv.ID = "cv-1"
	cv.Skills = append(cv.Skills, domain.Skill{Name: "Go", Level: domain.LevelAdvanced})
	cv.Experience = append(cv.Experience, domain.Experience{DurationMonths: 30})

	job := domain.NewJob("Backend Engineer", "desc")
	job.ID = "job-1"
	job.RequiredSkills = append(job.RequiredSkills, domain.JobRequirement{Skill: "Go", IsMandatory: true, Weight: 1})
	job.MinExperienceYears = 2

	analysis, err := a.ScoreMatch(context.Background(), cv, job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.CVID != "cv-1" || analysis.JobID != "job-1" {
		t.Fatalf("unexpected identifiers: %s/%s", analysis.CVID, analysis.JobID)
	}

	if analysis.OverallScore != 75.5 {
		t.Fatalf("unexpected score: %v", analysis.OverallScore)
	}

	if analysis.AIModelUsed != "stub-model" {
		t.Fatalf("expected model name on analysis, got %q", analysis.AIModelUsed)
	}

	if !strings.Contains(stub.lastPrompt, "- Skills: Go") {
		t.Fatalf("expected cv skills in prompt: %s", stub.lastPrompt)
	}

	if !strings.Contains(stub.lastPrompt, "- Experience: 2.5 years") {
		t.Fatalf("expected cv experience in prompt: %s", stub.lastPrompt)
	}

	if !strings.Contains(stub.lastPrompt, "- Minimum Experience: 2 years") {
		t.Fatalf("expected job experience in prompt: %s", stub.lastPrompt)
	}
}

func TestScoreMatchUnknownIDs(t *testing.T) {
	stub := &stubGenerator{response: `{"overall_score": 50}`}

	a := New(stub, zap.NewNop(), 0)

	analysis, err := a.ScoreMatch(context.Background(), domain.NewCV("f.pdf", "text"), domain.NewJob("t", "d"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.CVID != "unknown" || analysis.JobID != "unknown" {
		t.Fatalf("expected unknown identifiers, got %s/%s", analysis.CVID, analysis.JobID)
	}
}

func TestExtractCVRequiresText(t *testing.T) {
	a := New(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := a.ExtractCV(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank cv text")
	}
}
