package services

import (
	"math"
	"sort"
	"time"
)

// scoreBuckets is the fixed score-distribution table. Each bucket is
// [Lo, Hi) except the last, which is closed at both ends so a score of
// exactly 100 lands in "80-100".
var scoreBuckets = []struct {
	Lo    float64
	Hi    float64
	Label string
}{
	{0, 20, "0-20"},
	{20, 40, "20-40"},
	{40, 60, "40-60"},
	{60, 80, "60-80"},
	{80, 100, "80-100"},
}

// bucketIndex returns the score-distribution bucket for a score, or -1 for
// scores outside [0, 100].
func bucketIndex(score float64) int {
	for i, b := range scoreBuckets {
		if score >= b.Lo && score < b.Hi {
			return i
		}
	}
	// Last bucket is inclusive at the top end.
	if score >= scoreBuckets[len(scoreBuckets)-1].Lo && score <= scoreBuckets[len(scoreBuckets)-1].Hi {
		return len(scoreBuckets) - 1
	}
	return -1
}

type StatisticsService struct {
	store *ReviewStore
	now   func() time.Time
}

func NewStatisticsService(store *ReviewStore) *StatisticsService {
	return &StatisticsService{store: store, now: time.Now}
}

type ScoreBucketCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type FileTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type Statistics struct {
	TotalReviews      int                `json:"total_reviews"`
	AverageScore      float64            `json:"average_score"`
	MinScore          float64            `json:"min_score"`
	MaxScore          float64            `json:"max_score"`
	TotalErrors       int                `json:"total_errors"`
	TotalWarnings     int                `json:"total_warnings"`
	TotalSuggestions  int                `json:"total_suggestions"`
	AverageErrors     float64            `json:"average_errors"`
	AverageWarnings   float64            `json:"average_warnings"`
	AverageFileSize   float64            `json:"average_file_size"`
	RecentActivity7d  int                `json:"recent_activity_7d"`
	ScoreDistribution []ScoreBucketCount `json:"score_distribution"`
	FileTypes         []FileTypeCount    `json:"file_type_distribution"`
}

// Aggregate computes statistics over the full record set in a single pass.
// An empty store yields TotalReviews=0 and AverageScore=0, not an error.
func (s *StatisticsService) Aggregate() (*Statistics, error) {
	reviews, err := s.store.List()
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		ScoreDistribution: make([]ScoreBucketCount, len(scoreBuckets)),
	}
	for i, b := range scoreBuckets {
		stats.ScoreDistribution[i] = ScoreBucketCount{Range: b.Label}
	}

	if len(reviews) == 0 {
		stats.FileTypes = []FileTypeCount{}
		return stats, nil
	}

	recentCutoff := s.now().AddDate(0, 0, -7)
	var scoreSum, sizeSum float64
	minScore := math.MaxFloat64
	maxScore := -math.MaxFloat64
	fileTypes := make(map[string]int)

	for _, r := range reviews {
		scoreSum += r.Score
		sizeSum += float64(r.FileSize)
		if r.Score < minScore {
			minScore = r.Score
		}
		if r.Score > maxScore {
			maxScore = r.Score
		}

		stats.TotalErrors += r.ErrorCount
		stats.TotalWarnings += r.WarningCount
		stats.TotalSuggestions += r.SuggestionCount

		if i := bucketIndex(r.Score); i >= 0 {
			stats.ScoreDistribution[i].Count++
		}
		if r.FileType != "" {
			fileTypes[r.FileType]++
		}
		if r.CreatedAt.After(recentCutoff) {
			stats.RecentActivity7d++
		}
	}

	n := float64(len(reviews))
	stats.TotalReviews = len(reviews)
	stats.AverageScore = round2(scoreSum / n)
	stats.MinScore = minScore
	stats.MaxScore = maxScore
	stats.AverageErrors = round2(float64(stats.TotalErrors) / n)
	stats.AverageWarnings = round2(float64(stats.TotalWarnings) / n)
	stats.AverageFileSize = round2(sizeSum / n)

	stats.FileTypes = make([]FileTypeCount, 0, len(fileTypes))
	for ft, count := range fileTypes {
		stats.FileTypes = append(stats.FileTypes, FileTypeCount{Type: ft, Count: count})
	}
	sort.Slice(stats.FileTypes, func(i, j int) bool {
		if stats.FileTypes[i].Count != stats.FileTypes[j].Count {
			return stats.FileTypes[i].Count > stats.FileTypes[j].Count
		}
		return stats.FileTypes[i].Type < stats.FileTypes[j].Type
	})

	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
