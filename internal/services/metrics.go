package services

import (
	"strings"
)

// CodeMetrics holds basic line counts for an uploaded file.
type CodeMetrics struct {
	TotalLines   int     `json:"total_lines"`
	CodeLines    int     `json:"code_lines"`
	BlankLines   int     `json:"blank_lines"`
	CommentLines int     `json:"comment_lines"`
	CommentRatio float64 `json:"comment_ratio"`
}

// commentPrefixes are the single-line comment markers recognized across the
// supported languages. Block comments are not tracked.
var commentPrefixes = []string{"#", "//", "--"}

func isCommentLine(line string) bool {
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// CalculateMetrics computes line metrics over the file content.
func CalculateMetrics(content string) CodeMetrics {
	lines := strings.Split(content, "\n")

	m := CodeMetrics{TotalLines: len(lines)}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			m.BlankLines++
		case isCommentLine(trimmed):
			m.CommentLines++
		default:
			m.CodeLines++
		}
	}

	if m.CodeLines > 0 {
		m.CommentRatio = round2(float64(m.CommentLines) / float64(m.CodeLines) * 100)
	}
	return m
}
