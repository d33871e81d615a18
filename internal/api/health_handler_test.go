package api

import (
	"alcyxob/tracker-app/internal/domain"
	"net/http"
	"testing"
)

func float(v float64) *float64 { return &v }

func TestHealthEntryUpsertAndDelete(t *testing.T) {
	s := newTestServer(t)
	token := s.approvedUser(t, "body@example.com")

	w := s.do(t, http.MethodPut, "/api/v1/health/2024-03-01", token, SaveHealthEntryRequest{Weight: float(71.5)})
	expectStatus(t, w, http.StatusOK)
	var first domain.HealthEntry
	decode(t, w, &first)

	w = s.do(t, http.MethodPut, "/api/v1/health/2024-03-01", token, SaveHealthEntryRequest{Weight: float(70.9), BodyFatPercentage: float(18)})
	expectStatus(t, w, http.StatusOK)
	var second domain.HealthEntry
	decode(t, w, &second)
	if second.ID != first.ID || second.Weight == nil || *second.Weight != 70.9 {
		t.Fatalf("second save = %+v, want overwrite of %s", second, first.ID)
	}

	w = s.do(t, http.MethodGet, "/api/v1/health", token, nil)
	expectStatus(t, w, http.StatusOK)
	var entries []domain.HealthEntry
	decode(t, w, &entries)
	if len(entries) != 1 {
		t.Fatalf("entries = %+v, want 1", entries)
	}

	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/health/latest", token, nil), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/health/"+first.ID, token, nil), http.StatusNoContent)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/health/"+first.ID, token, nil), http.StatusNotFound)
}

func TestHealthEntryValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.approvedUser(t, "body@example.com")

	tests := []struct {
		name string
		req  SaveHealthEntryRequest
	}{
		{"empty", SaveHealthEntryRequest{}},
		{"zero weight", SaveHealthEntryRequest{Weight: float(0)}},
		{"heavy", SaveHealthEntryRequest{Weight: float(1000)}},
		{"body fat over 100", SaveHealthEntryRequest{BodyFatPercentage: float(100.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPut, "/api/v1/health/2024-03-01", token, tt.req)
			expectStatus(t, w, http.StatusBadRequest)
		})
	}
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/health/metrics?period=decade", token, nil), http.StatusBadRequest)
}

func TestStatsEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.approvedUser(t, "stats@example.com")
	book := createBook(t, s, token, "Go", "Basics", "Interfaces")

	w := s.do(t, http.MethodPut, "/api/v1/records/2024-02-10", token, SaveRecordRequest{
		Training:      domain.TrainingFlags{Running: true, Strength: true},
		StudyProgress: []domain.StudyProgress{{BookID: book.ID, ChapterID: book.Chapters[0].ID}},
	})
	expectStatus(t, w, http.StatusOK)

	w = s.do(t, http.MethodGet, "/api/v1/stats/monthly?month=2024-02", token, nil)
	expectStatus(t, w, http.StatusOK)
	var monthly struct {
		Month           string `json:"month"`
		StudyDays       int    `json:"studyDays"`
		ChaptersStudied int    `json:"chaptersStudied"`
	}
	decode(t, w, &monthly)
	if monthly.Month != "2024-02" || monthly.StudyDays != 1 || monthly.ChaptersStudied != 1 {
		t.Fatalf("monthly = %+v", monthly)
	}

	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/stats/monthly?month=February", token, nil), http.StatusBadRequest)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/stats/chart", token, nil), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/stats/distribution", token, nil), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/stats/books", token, nil), http.StatusOK)
}

func TestExportDisabledWithoutStorage(t *testing.T) {
	s := newTestServer(t)
	token := s.approvedUser(t, "export@example.com")

	expectStatus(t, s.do(t, http.MethodPost, "/api/v1/exports", token, nil), http.StatusServiceUnavailable)

	w := s.do(t, http.MethodGet, "/api/v1/exports", token, nil)
	expectStatus(t, w, http.StatusOK)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/exports/unknown", token, nil), http.StatusNotFound)
}
