package api

import (
	"alcyxob/tracker-app/internal/repository/memory"
	"alcyxob/tracker-app/internal/service"
	"alcyxob/tracker-app/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	testSecret     = "handler-test-secret"
	testAdminEmail = "admin@example.com"
	testPassword   = "correct-horse"
)

type testServer struct {
	router *gin.Engine
	auth   service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	books := memory.NewBookRepository()
	activity := memory.NewActivityRepository()
	health := memory.NewHealthRepository()
	exports := memory.NewExportRepository()
	drafts := service.NewDraftCache()

	svc := Services{
		Auth:     service.NewAuthService(users, testSecret, time.Hour, testAdminEmail),
		Catalog:  service.NewCatalogService(books, activity, drafts),
		Activity: service.NewActivityService(books, activity, drafts),
		Health:   service.NewHealthService(health),
		Stats:    service.NewStatsService(books, activity),
		Export:   service.NewExportService(users, books, activity, health, exports, storage.NewDisabledStorage()),
	}
	router := gin.New()
	SetupRoutes(router, testSecret, svc)
	return &testServer{router: router, auth: svc.Auth}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// approvedUser registers and approves a user directly through the service and returns a token.
func (s *testServer) approvedUser(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()
	user, err := s.auth.Register(ctx, email, "", testPassword)
	if err != nil {
		t.Fatalf("Register(%s) error = %v", email, err)
	}
	if _, err := s.auth.ApproveUser(ctx, user.ID); err != nil {
		t.Fatalf("ApproveUser() error = %v", err)
	}
	token, _, err := s.auth.Login(ctx, email, testPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}
