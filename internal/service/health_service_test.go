package service

import (
	"alcyxob/tracker-app/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestSaveHealthEntryValidation(t *testing.T) {
	svc := NewHealthService(memory.NewHealthRepository())
	tests := []struct {
		name    string
		date    string
		weight  *float64
		bodyFat *float64
		wantErr bool
	}{
		{"weight only", "2024-01-01", ptr(70.5), nil, false},
		{"body fat only", "2024-01-02", nil, ptr(18), false},
		{"zero body fat", "2024-01-03", nil, ptr(0), false},
		{"max weight", "2024-01-04", ptr(999.9), nil, false},
		{"neither value", "2024-01-05", nil, nil, true},
		{"zero weight", "2024-01-06", ptr(0), nil, true},
		{"weight too high", "2024-01-07", ptr(1000), nil, true},
		{"negative body fat", "2024-01-08", nil, ptr(-1), true},
		{"body fat over 100", "2024-01-09", nil, ptr(100.1), true},
		{"bad date", "2024/01/10", ptr(70), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveHealthEntry(context.Background(), "u1", tt.date, tt.weight, tt.bodyFat)
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSaveHealthEntryUpsertByDate(t *testing.T) {
	svc := NewHealthService(memory.NewHealthRepository())
	ctx := context.Background()

	first, _ := svc.SaveHealthEntry(ctx, "u1", "2024-01-01", ptr(70), ptr(20))
	second, err := svc.SaveHealthEntry(ctx, "u1", "2024-01-01", ptr(69), nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert created a new entry: %s vs %s", first.ID, second.ID)
	}

	entries, _ := svc.ListHealthEntries(ctx, "u1", "", "")
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	if *entries[0].Weight != 69 || entries[0].BodyFatPercentage != nil {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestDeleteAndLatestHealthEntry(t *testing.T) {
	svc := NewHealthService(memory.NewHealthRepository())
	ctx := context.Background()

	if _, err := svc.LatestHealthEntry(ctx, "u1"); !errors.Is(err, ErrHealthEntryNotFound) {
		t.Errorf("latest on empty = %v", err)
	}
	older, _ := svc.SaveHealthEntry(ctx, "u1", "2024-01-01", ptr(70), nil)
	newer, _ := svc.SaveHealthEntry(ctx, "u1", "2024-02-01", ptr(68), nil)

	latest, _ := svc.LatestHealthEntry(ctx, "u1")
	if latest.ID != newer.ID {
		t.Errorf("latest = %+v", latest)
	}

	if err := svc.DeleteHealthEntry(ctx, "u2", older.ID); !errors.Is(err, ErrHealthEntryNotFound) {
		t.Errorf("foreign delete error = %v", err)
	}
	if err := svc.DeleteHealthEntry(ctx, "u1", newer.ID); err != nil {
		t.Fatal(err)
	}
	latest, _ = svc.LatestHealthEntry(ctx, "u1")
	if latest.ID != older.ID {
		t.Errorf("latest after delete = %+v", latest)
	}
}

func TestBodyMetricsPeriod(t *testing.T) {
	repo := memory.NewHealthRepository()
	svc := &healthService{healthRepo: repo, now: func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}}
	ctx := context.Background()
	_, _ = svc.SaveHealthEntry(ctx, "u1", "2024-06-01", ptr(72), nil)
	_, _ = svc.SaveHealthEntry(ctx, "u1", "2024-06-14", ptr(71), nil)
	_, _ = svc.SaveHealthEntry(ctx, "u1", "2024-01-01", ptr(80), nil)

	month, err := svc.BodyMetrics(ctx, "u1", "month")
	if err != nil {
		t.Fatal(err)
	}
	if len(month.Entries) != 2 || month.Weight == nil || month.Weight.Change != -1 {
		t.Errorf("month metrics = %+v", month)
	}

	if _, err := svc.BodyMetrics(ctx, "u1", "decade"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad period error = %v", err)
	}
}
