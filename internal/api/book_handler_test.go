package api

import (
	"alcyxob/tracker-app/internal/domain"
	"net/http"
	"testing"
)

func createBook(t *testing.T, s *testServer, token, name string, chapters ...string) domain.Book {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/books", token, CreateBookRequest{Name: name, Chapters: chapters})
	expectStatus(t, w, http.StatusCreated)
	var book domain.Book
	decode(t, w, &book)
	return book
}

func TestBookCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.approvedUser(t, "reader@example.com")

	book := createBook(t, s, token, " Algorithms ", "Sorting", "Graphs", "Sorting")
	if book.Name != "Algorithms" || len(book.Chapters) != 2 {
		t.Fatalf("created book = %+v", book)
	}

	w := s.do(t, http.MethodGet, "/api/v1/books/"+book.ID, token, nil)
	expectStatus(t, w, http.StatusOK)

	newName := "Algorithms 2e"
	w = s.do(t, http.MethodPut, "/api/v1/books/"+book.ID, token, UpdateBookRequest{
		Name:     &newName,
		Chapters: []string{"Graphs", "Sort Methods"},
	})
	expectStatus(t, w, http.StatusOK)
	var updated domain.Book
	decode(t, w, &updated)
	if updated.Name != newName || len(updated.Chapters) != 2 {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Chapters[0].Name != "Graphs" || updated.Chapters[0].ID != book.Chapters[1].ID || updated.Chapters[0].Order != 1 {
		t.Errorf("Graphs should keep its ID and move to order 1: %+v", updated.Chapters[0])
	}
	if updated.Chapters[1].Name != "Sort Methods" || updated.Chapters[1].Order != 2 {
		t.Errorf("Sort Methods should be appended: %+v", updated.Chapters[1])
	}

	w = s.do(t, http.MethodGet, "/api/v1/books", token, nil)
	expectStatus(t, w, http.StatusOK)
	var list []domain.Book
	decode(t, w, &list)
	if len(list) != 1 {
		t.Fatalf("list = %+v, want 1 book", list)
	}

	expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/books/"+book.ID, token, nil), http.StatusNoContent)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/books/"+book.ID, token, nil), http.StatusNotFound)
}

func TestBookValidationAndOwnership(t *testing.T) {
	s := newTestServer(t)
	owner := s.approvedUser(t, "owner@example.com")
	other := s.approvedUser(t, "other@example.com")
	book := createBook(t, s, owner, "Go", "Basics")

	expectStatus(t, s.do(t, http.MethodPost, "/api/v1/books", owner, CreateBookRequest{Name: "Empty", Chapters: []string{" "}}), http.StatusBadRequest)
	expectStatus(t, s.do(t, http.MethodPut, "/api/v1/books/"+book.ID, owner, UpdateBookRequest{}), http.StatusBadRequest)
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/books/"+book.ID, other, nil), http.StatusNotFound)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/v1/books/"+book.ID, other, nil), http.StatusNotFound)
}
