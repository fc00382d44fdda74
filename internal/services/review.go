package services

import (
	"context"

	"github.com/reviewlens/backend/internal/models"
	"github.com/reviewlens/backend/pkg/logger"
)

// ReviewService runs the full analyze-and-persist pipeline for one uploaded
// file. Both the synchronous upload handler and the batch worker go through
// it, so a review row only ever appears at analysis completion.
type ReviewService struct {
	store    *ReviewStore
	analyzer *AnalyzerService
}

func NewReviewService(store *ReviewStore, analyzer *AnalyzerService) *ReviewService {
	return &ReviewService{store: store, analyzer: analyzer}
}

// ProcessFile analyzes the given source text and persists the resulting
// review. On analysis failure nothing is stored.
func (s *ReviewService) ProcessFile(ctx context.Context, filename string, content []byte) (*models.Review, error) {
	code := string(content)
	metrics := CalculateMetrics(code)

	analysis, err := s.analyzer.Analyze(ctx, code, filename)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		Filename:        filename,
		FileType:        FileExtension(filename),
		FileSize:        int64(len(content)),
		Language:        DetectLanguage(filename),
		CodeContent:     code,
		Score:           analysis.Score,
		Summary:         analysis.Summary,
		Issues:          analysis.Issues,
		ErrorCount:      analysis.Issues.CountBySeverity(models.SeverityError),
		WarningCount:    analysis.Issues.CountBySeverity(models.SeverityWarning),
		SuggestionCount: analysis.Issues.CountBySeverity(models.SeveritySuggestion),
		TotalLines:      metrics.TotalLines,
		CodeLines:       metrics.CodeLines,
		BlankLines:      metrics.BlankLines,
		CommentLines:    metrics.CommentLines,
	}

	if _, err := s.store.Insert(review); err != nil {
		return nil, err
	}

	logger.Info().
		Uint("review_id", review.ID).
		Str("filename", review.Filename).
		Float64("score", review.Score).
		Msg("review stored")

	return review, nil
}

// ProcessTask is the task-queue entry point for batch analysis.
func (s *ReviewService) ProcessTask(ctx context.Context, task *AnalysisTask) error {
	_, err := s.ProcessFile(ctx, task.Filename, []byte(task.Content))
	if err != nil {
		logger.Error().
			Err(err).
			Str("task_id", task.TaskID).
			Str("filename", task.Filename).
			Msg("batch analysis failed")
	}
	return err
}
