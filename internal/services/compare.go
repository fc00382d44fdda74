package services

// CompareService computes structural diffs between two stored reviews.
type CompareService struct {
	store *ReviewStore
}

func NewCompareService(store *ReviewStore) *CompareService {
	return &CompareService{store: store}
}

// ComparisonSide is the per-review slice of a comparison.
type ComparisonSide struct {
	ID          uint    `json:"id"`
	Filename    string  `json:"filename"`
	Score       float64 `json:"score"`
	Errors      int     `json:"errors"`
	Warnings    int     `json:"warnings"`
	Suggestions int     `json:"suggestions"`
}

// IssueDelta holds per-severity count differences (B minus A).
type IssueDelta struct {
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Suggestions int `json:"suggestions"`
}

type Comparison struct {
	ReviewA    ComparisonSide `json:"review_a"`
	ReviewB    ComparisonSide `json:"review_b"`
	ScoreDelta float64        `json:"score_delta"`
	IssueDelta IssueDelta     `json:"issue_delta"`
	Improved   bool           `json:"improved"`
}

// Compare resolves both reviews before any computation; a missing id fails
// with NotFound and no partial result. Comparing a review with itself is
// valid and yields all-zero deltas.
func (s *CompareService) Compare(idA, idB uint) (*Comparison, error) {
	reviewA, err := s.store.Get(idA)
	if err != nil {
		return nil, err
	}
	reviewB, err := s.store.Get(idB)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		ReviewA: ComparisonSide{
			ID:          reviewA.ID,
			Filename:    reviewA.Filename,
			Score:       reviewA.Score,
			Errors:      reviewA.ErrorCount,
			Warnings:    reviewA.WarningCount,
			Suggestions: reviewA.SuggestionCount,
		},
		ReviewB: ComparisonSide{
			ID:          reviewB.ID,
			Filename:    reviewB.Filename,
			Score:       reviewB.Score,
			Errors:      reviewB.ErrorCount,
			Warnings:    reviewB.WarningCount,
			Suggestions: reviewB.SuggestionCount,
		},
		ScoreDelta: reviewB.Score - reviewA.Score,
		IssueDelta: IssueDelta{
			Errors:      reviewB.ErrorCount - reviewA.ErrorCount,
			Warnings:    reviewB.WarningCount - reviewA.WarningCount,
			Suggestions: reviewB.SuggestionCount - reviewA.SuggestionCount,
		},
		Improved: reviewB.Score > reviewA.Score,
	}, nil
}
