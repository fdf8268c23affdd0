package devserver

import (
	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared/response"
)

// ════════════════════════════════════════════════════════════════
// READ: GET /Book, /Book/:id, /Book/filter, /Book/by-genre/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler) ListBooks(c *gin.Context) {
	response.OK(c, h.store.FilterBooks(book.Filter{}))
}

func (h *Handler) GetBook(c *gin.Context) {
	b, err := h.store.GetBook(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) FilterBooks(c *gin.Context) {
	f, err := book.FilterFromQuery(c.Request.URL.Query())
	if err == nil {
		err = f.Validate()
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, h.store.FilterBooks(f))
}

func (h *Handler) BooksByGenre(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.store.GetGenre(id); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, h.store.FilterBooks(book.ByGenre(id)))
}

// ════════════════════════════════════════════════════════════════
// WRITE (admin): POST /Book, PUT /Book/:id, DELETE /Book/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler) CreateBook(c *gin.Context) {
	var req book.BookRequest
	if !bind(c, &req) {
		return
	}
	b, err := h.store.CreateBook(req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) UpdateBook(c *gin.Context) {
	var req book.BookRequest
	if !bind(c, &req) {
		return
	}
	b, err := h.store.UpdateBook(c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.store.DeleteBook(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "Book deleted successfully")
}
