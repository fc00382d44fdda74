package services

import (
	"time"

	"github.com/reviewlens/backend/pkg/response"
)

// TrendService buckets reviews by calendar day and reports a daily quality
// average over a requested window.
type TrendService struct {
	store *ReviewStore
	now   func() time.Time
}

func NewTrendService(store *ReviewStore) *TrendService {
	return &TrendService{store: store, now: time.Now}
}

// TrendPoint is one calendar day of the trend series.
type TrendPoint struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	AverageScore float64 `json:"average_score"`
	ReviewCount  int     `json:"review_count"`
	TotalErrors  int     `json:"total_errors"`
}

// Trend returns one entry per calendar day in [today-days+1, today],
// strictly ascending, including days with zero reviews. days must be
// positive; non-positive input is rejected rather than clamped.
func (s *TrendService) Trend(days int) ([]TrendPoint, error) {
	if days <= 0 {
		return nil, response.NewBadRequest("days must be a positive integer")
	}

	today := s.now()
	windowStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, -(days - 1))
	windowEnd := windowStart.AddDate(0, 0, days)

	reviews, err := s.store.ListBetween(windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	type dayAccum struct {
		scoreSum float64
		count    int
		errors   int
	}
	byDay := make(map[string]*dayAccum)
	for _, r := range reviews {
		key := r.CreatedAt.In(today.Location()).Format("2006-01-02")
		acc := byDay[key]
		if acc == nil {
			acc = &dayAccum{}
			byDay[key] = acc
		}
		acc.scoreSum += r.Score
		acc.count++
		acc.errors += r.ErrorCount
	}

	// One point per day, gaps included: the chart expects a full series.
	points := make([]TrendPoint, 0, days)
	for d := 0; d < days; d++ {
		day := windowStart.AddDate(0, 0, d)
		key := day.Format("2006-01-02")
		point := TrendPoint{Date: key}
		if acc, ok := byDay[key]; ok {
			point.AverageScore = round2(acc.scoreSum / float64(acc.count))
			point.ReviewCount = acc.count
			point.TotalErrors = acc.errors
		}
		points = append(points, point)
	}

	return points, nil
}
