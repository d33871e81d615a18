package tracker

import (
	"sort"
	"time"

	"alcyxob/tracker-app/internal/domain"
)

// Period selects the window of a body-metrics series.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, bool) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, true
	}
	return "", false
}

// Start returns the first day included in the period ending at now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// MetricChange compares the two most recent readings of one metric.
type MetricChange struct {
	Latest     float64 `json:"latest"`
	Previous   float64 `json:"previous"`
	Change     float64 `json:"change"`
	Percentage float64 `json:"percentage"`
	IsPositive bool    `json:"isPositive"`
}

// BodyMetrics is a body-metric series with its latest trend.
type BodyMetrics struct {
	Period  Period               `json:"period"`
	Entries []domain.HealthEntry `json:"entries"`
	Weight  *MetricChange        `json:"weightChange"`
	BodyFat *MetricChange        `json:"bodyFatChange"`
}

// SortHealthEntries returns the entries sorted by date ascending.
func SortHealthEntries(entries []domain.HealthEntry) []domain.HealthEntry {
	out := make([]domain.HealthEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// HealthEntriesBetween returns the entries with from <= date <= to, sorted ascending.
// Empty bounds are open.
func HealthEntriesBetween(entries []domain.HealthEntry, from, to string) []domain.HealthEntry {
	var out []domain.HealthEntry
	for _, e := range SortHealthEntries(entries) {
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date > to {
			continue
		}
		out = append(out, e)
	}
	return out
}

// LatestHealthEntry returns the entry with the most recent date.
func LatestHealthEntry(entries []domain.HealthEntry) (domain.HealthEntry, bool) {
	if len(entries) == 0 {
		return domain.HealthEntry{}, false
	}
	sorted := SortHealthEntries(entries)
	return sorted[len(sorted)-1], true
}

// BodyMetricsFor builds the series for a period ending at now.
func BodyMetricsFor(entries []domain.HealthEntry, period Period, now time.Time) BodyMetrics {
	from := period.Start(now).Format(domain.DateLayout)
	to := now.Format(domain.DateLayout)
	series := HealthEntriesBetween(entries, from, to)
	if series == nil {
		series = []domain.HealthEntry{}
	}
	return BodyMetrics{
		Period:  period,
		Entries: series,
		Weight:  latestChange(series, func(e domain.HealthEntry) *float64 { return e.Weight }),
		BodyFat: latestChange(series, func(e domain.HealthEntry) *float64 { return e.BodyFatPercentage }),
	}
}

// latestChange compares the last two readings that carry the metric.
func latestChange(series []domain.HealthEntry, metric func(domain.HealthEntry) *float64) *MetricChange {
	var values []float64
	for _, e := range series {
		if v := metric(e); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) < 2 {
		return nil
	}
	latest, previous := values[len(values)-1], values[len(values)-2]
	c := &MetricChange{
		Latest:     latest,
		Previous:   previous,
		Change:     latest - previous,
		IsPositive: latest > previous,
	}
	if previous != 0 {
		c.Percentage = (latest - previous) / previous * 100
	}
	return c
}
