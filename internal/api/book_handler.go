package api

import (
	"alcyxob/tracker-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BookHandler serves the book catalog.
type BookHandler struct {
	catalogService service.CatalogService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(catalogService service.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

// CreateBookRequest defines the expected JSON for creating a book.
type CreateBookRequest struct {
	Name     string   `json:"name" binding:"required"`
	Chapters []string `json:"chapters" binding:"required,min=1"` // chapter names in order
}

// UpdateBookRequest changes only the fields present.
// Omitting chapters keeps them; sending a list diffs it by name against the current chapters.
type UpdateBookRequest struct {
	Name     *string  `json:"name"`
	Chapters []string `json:"chapters"`
}

// ListBooks godoc
// @Summary List books
// @Description Returns the user's books newest first; chapter completion is derived from activity records.
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Book
// @Router /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	books, err := h.catalogService.ListBooks(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary Get a book
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param bookId path string true "Book ID"
// @Success 200 {object} domain.Book
// @Failure 404 {object} gin.H "Book not found"
// @Router /books/{bookId} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	book, err := h.catalogService.GetBook(c.Request.Context(), userID, c.Param("bookId"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook godoc
// @Summary Create a book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param book body CreateBookRequest true "Book name and chapter names"
// @Success 201 {object} domain.Book
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	book, err := h.catalogService.AddBook(c.Request.Context(), userID, req.Name, req.Chapters)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// UpdateBook godoc
// @Summary Update a book
// @Description Renames the book and/or replaces its chapter list. Chapters are matched by name:
// @Description removed names lose their study history, new names are appended.
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookId path string true "Book ID"
// @Param book body UpdateBookRequest true "Fields to change"
// @Success 200 {object} domain.Book
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 404 {object} gin.H "Book not found"
// @Router /books/{bookId} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Name == nil && req.Chapters == nil {
		abortWithError(c, http.StatusBadRequest, "Nothing to update")
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	book, err := h.catalogService.UpdateBook(c.Request.Context(), userID, c.Param("bookId"), req.Name, req.Chapters)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete a book
// @Description Deletes the book and removes its chapters from every activity record and draft.
// @Tags Books
// @Security BearerAuth
// @Param bookId path string true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} gin.H "Book not found"
// @Router /books/{bookId} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteBook(c.Request.Context(), userID, c.Param("bookId")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
