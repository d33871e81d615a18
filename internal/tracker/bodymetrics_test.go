package tracker

import (
	"testing"
	"time"

	"alcyxob/tracker-app/internal/domain"
)

func kg(v float64) *float64 { return &v }

func TestBodyMetricsFor(t *testing.T) {
	entries := []domain.HealthEntry{
		{Date: "2024-06-10", Weight: kg(71), BodyFatPercentage: kg(16)},
		{Date: "2024-05-01", Weight: kg(75)},
		{Date: "2024-06-14", Weight: kg(70)},
		{Date: "2024-06-12", BodyFatPercentage: kg(15)},
	}
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	got := BodyMetricsFor(entries, PeriodWeek, now)
	if len(got.Entries) != 3 {
		t.Fatalf("want 3 entries in the week, got %d", len(got.Entries))
	}
	if got.Entries[0].Date != "2024-06-10" || got.Entries[2].Date != "2024-06-14" {
		t.Errorf("entries not sorted: %+v", got.Entries)
	}
	if got.Weight == nil || got.Weight.Change != -1 || got.Weight.IsPositive {
		t.Errorf("weight change = %+v", got.Weight)
	}
	if got.BodyFat == nil || got.BodyFat.Latest != 15 || got.BodyFat.Previous != 16 {
		t.Errorf("body fat change = %+v", got.BodyFat)
	}

	year := BodyMetricsFor(entries, PeriodYear, now)
	if len(year.Entries) != 4 {
		t.Errorf("want 4 entries in the year, got %d", len(year.Entries))
	}
}

func TestParsePeriod(t *testing.T) {
	if _, ok := ParsePeriod("decade"); ok {
		t.Error("decade should not parse")
	}
	if p, ok := ParsePeriod("month"); !ok || p != PeriodMonth {
		t.Errorf("got %q, %v", p, ok)
	}
}

func TestLatestHealthEntry(t *testing.T) {
	if _, ok := LatestHealthEntry(nil); ok {
		t.Fatal("empty input should have no latest entry")
	}
	e, _ := LatestHealthEntry([]domain.HealthEntry{{Date: "2024-01-02"}, {Date: "2024-03-01"}, {Date: "2024-02-01"}})
	if e.Date != "2024-03-01" {
		t.Errorf("latest = %s", e.Date)
	}
}
