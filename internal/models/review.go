package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Issue severities reported by the analyzer.
const (
	SeverityError      = "error"
	SeverityWarning    = "warning"
	SeveritySuggestion = "suggestion"
)

// Issue is a single problem reported within a review.
type Issue struct {
	Severity string `json:"severity"` // error, warning, suggestion
	Message  string `json:"message"`
	Line     *int   `json:"line,omitempty"`
}

// IssueList is stored as a JSON text column. An empty list round-trips as
// "[]", never NULL.
type IssueList []Issue

func (l IssueList) Value() (driver.Value, error) {
	if l == nil {
		l = IssueList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *IssueList) Scan(src interface{}) error {
	if src == nil {
		*l = IssueList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IssueList", src)
	}

	if len(data) == 0 {
		*l = IssueList{}
		return nil
	}

	var issues []Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return err
	}
	if issues == nil {
		issues = []Issue{}
	}
	*l = issues
	return nil
}

// CountBySeverity returns the number of issues with the given severity.
func (l IssueList) CountBySeverity(severity string) int {
	n := 0
	for _, issue := range l {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// Review represents one persisted analysis result for a single submitted
// file. Rows are immutable after insert; removal is whole-row (no soft
// delete, hence no gorm.DeletedAt).
type Review struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Filename        string    `gorm:"size:255;not null;index" json:"filename"`
	FileType        string    `gorm:"size:20" json:"file_type"`
	FileSize        int64     `json:"file_size"`
	Language        string    `gorm:"size:50" json:"language"`
	CodeContent     string    `gorm:"type:text" json:"code_content,omitempty"`
	Score           float64   `gorm:"not null" json:"score"`
	Summary         string    `gorm:"type:text" json:"summary"`
	Issues          IssueList `gorm:"type:text;not null" json:"issues"`
	ErrorCount      int       `gorm:"not null;default:0" json:"error_count"`
	WarningCount    int       `gorm:"not null;default:0" json:"warning_count"`
	SuggestionCount int       `gorm:"not null;default:0" json:"suggestion_count"`
	TotalLines      int       `json:"total_lines"`
	CodeLines       int       `json:"code_lines"`
	BlankLines      int       `json:"blank_lines"`
	CommentLines    int       `json:"comment_lines"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
