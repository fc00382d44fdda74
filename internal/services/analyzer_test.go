package services

import (
	"strings"
	"testing"

	"github.com/reviewlens/backend/internal/models"
)

const sampleReply = `Here is my review:
` + "```json" + `
{
    "overall_quality_score": 85,
    "summary": "Solid code with minor issues.",
    "errors": [
        {"type": "NullPointer", "line": 12, "description": "possible nil dereference"}
    ],
    "warnings": [
        {"type": "Naming", "line": null, "description": "unclear variable name"}
    ],
    "suggestions": [
        {"category": "Performance", "description": "cache the lookup"}
    ],
    "strengths": ["clear structure"],
    "readability_score": 90,
    "modularity_score": 80,
    "best_practices_score": 75
}
` + "```" + `
Hope that helps!`

func TestParseAnalysisFencedJSON(t *testing.T) {
	result, err := parseAnalysis(sampleReply)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}

	if result.Score != 85 {
		t.Errorf("expected score 85, got %v", result.Score)
	}
	if result.Summary != "Solid code with minor issues." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if len(result.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(result.Issues))
	}
	if result.Readability != 90 || result.Modularity != 80 || result.BestPractices != 75 {
		t.Errorf("unexpected sub-scores: %v/%v/%v", result.Readability, result.Modularity, result.BestPractices)
	}
}

func TestParseAnalysisIssueOrdering(t *testing.T) {
	result, err := parseAnalysis(sampleReply)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}

	wantSeverities := []string{
		models.SeverityError,
		models.SeverityWarning,
		models.SeveritySuggestion,
	}
	for i, want := range wantSeverities {
		if result.Issues[i].Severity != want {
			t.Errorf("issue %d: expected severity %s, got %s", i, want, result.Issues[i].Severity)
		}
	}

	if result.Issues[0].Line == nil || *result.Issues[0].Line != 12 {
		t.Errorf("expected line 12 on error, got %v", result.Issues[0].Line)
	}
	if result.Issues[1].Line != nil {
		t.Errorf("expected nil line on warning, got %v", *result.Issues[1].Line)
	}
	if !strings.HasPrefix(result.Issues[0].Message, "NullPointer: ") {
		t.Errorf("expected type-prefixed message, got %q", result.Issues[0].Message)
	}
}

func TestParseAnalysisNoJSON(t *testing.T) {
	_, err := parseAnalysis("I cannot review this file, sorry.")
	if err == nil {
		t.Fatal("expected error for reply without JSON")
	}
}

func TestParseAnalysisMalformedJSON(t *testing.T) {
	_, err := parseAnalysis(`{"overall_quality_score": "not a number"}`)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseAnalysisEmptyIssuesNeverNil(t *testing.T) {
	result, err := parseAnalysis(`{"overall_quality_score": 100, "summary": "perfect"}`)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if result.Issues == nil {
		t.Error("expected empty issue list, got nil")
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected 0 issues, got %d", len(result.Issues))
	}
}

func TestParseAnalysisClampsScores(t *testing.T) {
	result, err := parseAnalysis(`{"overall_quality_score": 150, "readability_score": -10}`)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if result.Score != 100 {
		t.Errorf("expected score clamped to 100, got %v", result.Score)
	}
	if result.Readability != 0 {
		t.Errorf("expected readability clamped to 0, got %v", result.Readability)
	}
}

func TestIssueMessage(t *testing.T) {
	tests := []struct {
		kind, desc, want string
	}{
		{"Bug", "off by one", "Bug: off by one"},
		{"", "just a description", "just a description"},
		{"JustAType", "", "JustAType"},
	}
	for _, tt := range tests {
		if got := issueMessage(tt.kind, tt.desc); got != tt.want {
			t.Errorf("issueMessage(%q, %q) = %q, want %q", tt.kind, tt.desc, got, tt.want)
		}
	}
}
