package analysis

import (
	"sort"
	"time"

	"ptstudio/trainer-hub/internal/domain"
)

// DefaultRateWindowDays is the look-back window for weekly-rate computation.
const DefaultRateWindowDays = 30

type ratePoint struct {
	Date  time.Time
	Value float64
}

// metricSeries builds the ascending-by-date (date, value) series for a metric.
func metricSeries(measurements []domain.Measurement, metricID string) []ratePoint {
	var points []ratePoint
	for i := range measurements {
		if v, ok := measurements[i].Value(metricID); ok {
			points = append(points, ratePoint{Date: measurements[i].Date, Value: v})
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// ComputeWeeklyRate returns the weekly rate of change for a metric, computed
// as a pure two-point slope between the oldest and newest point within
// windowDays of the latest measurement. When fewer than 2 points fall inside
// the window it falls back to the full series' endpoints. Returns nil with
// fewer than 2 points overall, or when the two selected points share the
// same date (zero day-delta).
func ComputeWeeklyRate(measurements []domain.Measurement, metricID string, windowDays int) *float64 {
	if windowDays <= 0 {
		windowDays = DefaultRateWindowDays
	}

	points := metricSeries(measurements, metricID)
	if len(points) < 2 {
		return nil
	}

	latest := points[len(points)-1]
	cutoff := latest.Date.AddDate(0, 0, -windowDays)

	var window []ratePoint
	for _, p := range points {
		if !p.Date.Before(cutoff) {
			window = append(window, p)
		}
	}
	if len(window) < 2 {
		// Too sparse inside the window: fall back to the whole series.
		window = []ratePoint{points[0], latest}
	}

	first := window[0]
	last := window[len(window)-1]

	days := last.Date.Sub(first.Date).Hours() / 24
	if days == 0 {
		return nil
	}

	rate := round2((last.Value - first.Value) / days * 7)
	return &rate
}
