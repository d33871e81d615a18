package tracker

import (
	"math"
	"time"

	"alcyxob/tracker-app/internal/domain"
)

// chartMonths is how many months ChartData covers, current month included.
const chartMonths = 6

// TrainingBreakdown counts training days in a period.
type TrainingBreakdown struct {
	RunningDays       int `json:"runningDays"`
	StrengthDays      int `json:"strengthDays"`
	TotalTrainingDays int `json:"totalTrainingDays"` // days with running or strength
}

// MonthlyStats summarises one calendar month of activity.
type MonthlyStats struct {
	Month             string            `json:"month"` // YYYY-MM
	TrainingRate      float64           `json:"trainingRate"`
	TrainingBreakdown TrainingBreakdown `json:"trainingBreakdown"`
	StudyDays         int               `json:"studyDays"`
	ChaptersStudied   int               `json:"chaptersStudied"`
	BookProgress      []BookProgress    `json:"bookProgress"`
}

// ChartPoint is one month of the activity chart.
type ChartPoint struct {
	Month    string `json:"month"` // yyyy/MM
	Running  int    `json:"running"`
	Strength int    `json:"strength"`
	Study    int    `json:"study"`
}

// TrainingDistribution is the share of running vs strength days, in percent.
type TrainingDistribution struct {
	Running  float64 `json:"running"`
	Strength float64 `json:"strength"`
}

// BookProgress is the completion state of one book.
type BookProgress struct {
	BookID            string  `json:"bookId"`
	BookName          string  `json:"bookName"`
	CompletedChapters int     `json:"completedChapters"`
	TotalChapters     int     `json:"totalChapters"`
	CompletionRate    float64 `json:"completionRate"`
	IsCompleted       bool    `json:"isCompleted"`
	CompletedMonth    string  `json:"completedMonth,omitempty"` // YYYY-MM of the last chapter completed
}

// BookProgressSummary aggregates BookProgress over the catalog.
type BookProgressSummary struct {
	Books           []BookProgress `json:"books"`
	InProgressBooks int            `json:"inProgressBooks"`
	CompletedBooks  int            `json:"completedBooks"`
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// recordsInMonth returns records whose date falls in the month of t.
func recordsInMonth(records []domain.ActivityRecord, t time.Time) []domain.ActivityRecord {
	key := monthKey(t)
	var out []domain.ActivityRecord
	for _, r := range records {
		d, err := domain.ParseDate(r.Date)
		if err != nil {
			continue
		}
		if monthKey(d) == key {
			out = append(out, r)
		}
	}
	return out
}

func breakdown(records []domain.ActivityRecord) (TrainingBreakdown, int) {
	var b TrainingBreakdown
	study := 0
	for _, r := range records {
		if r.Training.Running {
			b.RunningDays++
		}
		if r.Training.Strength {
			b.StrengthDays++
		}
		if r.Training.Any() {
			b.TotalTrainingDays++
		}
		if r.HasStudy() {
			study++
		}
	}
	return b, study
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MonthlyStats computes the statistics for the month containing month.
func (s Snapshot) MonthlyStats(month time.Time) MonthlyStats {
	recs := recordsInMonth(s.Records, month)
	b, study := breakdown(recs)
	chapters := 0
	for _, r := range recs {
		chapters += len(r.StudyProgress)
	}
	return MonthlyStats{
		Month:             monthKey(month),
		TrainingRate:      float64(b.TotalTrainingDays) / float64(daysIn(month)) * 100,
		TrainingBreakdown: b,
		StudyDays:         study,
		ChaptersStudied:   chapters,
		BookProgress:      s.BookProgress().Books,
	}
}

// ChartData returns day counts for the last six months, oldest first.
func (s Snapshot) ChartData(now time.Time) []ChartPoint {
	points := make([]ChartPoint, 0, chartMonths)
	for i := chartMonths - 1; i >= 0; i-- {
		target := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		b, study := breakdown(recordsInMonth(s.Records, target))
		points = append(points, ChartPoint{
			Month:    target.Format("2006/01"),
			Running:  b.RunningDays,
			Strength: b.StrengthDays,
			Study:    study,
		})
	}
	return points
}

// TrainingDistribution splits the current month's training days between running
// and strength, rounded to one decimal. Both are zero when nothing was logged.
func (s Snapshot) TrainingDistribution(now time.Time) TrainingDistribution {
	b, _ := breakdown(recordsInMonth(s.Records, now))
	total := b.RunningDays + b.StrengthDays
	if total == 0 {
		return TrainingDistribution{}
	}
	return TrainingDistribution{
		Running:  round1(float64(b.RunningDays) / float64(total) * 100),
		Strength: round1(float64(b.StrengthDays) / float64(total) * 100),
	}
}

// BookProgress reports per-book completion using the derived-completion index.
func (s Snapshot) BookProgress() BookProgressSummary {
	summary := BookProgressSummary{Books: make([]BookProgress, 0, len(s.Books))}
	for _, b := range s.ProjectCompletion() {
		p := BookProgress{BookID: b.ID, BookName: b.Name, TotalChapters: len(b.Chapters)}
		last := ""
		for _, ch := range b.Chapters {
			if !ch.IsCompleted {
				continue
			}
			p.CompletedChapters++
			if ch.CompletedDate != nil && *ch.CompletedDate > last {
				last = *ch.CompletedDate
			}
		}
		if p.TotalChapters > 0 {
			p.CompletionRate = round1(float64(p.CompletedChapters) / float64(p.TotalChapters) * 100)
			p.IsCompleted = p.CompletedChapters == p.TotalChapters
		}
		switch {
		case p.IsCompleted:
			summary.CompletedBooks++
			if len(last) >= 7 {
				p.CompletedMonth = last[:7]
			}
		case p.CompletedChapters > 0:
			summary.InProgressBooks++
		}
		summary.Books = append(summary.Books, p)
	}
	return summary
}
