package devserver

import (
	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/shared/response"
)

func (h *Handler) ListAuthors(c *gin.Context) {
	response.OK(c, h.store.ListAuthors(false))
}

func (h *Handler) ListAuthorsWithBookCount(c *gin.Context) {
	response.OK(c, h.store.ListAuthors(true))
}

func (h *Handler) GetAuthor(c *gin.Context) {
	a, err := h.store.GetAuthor(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, a)
}

func (h *Handler) AuthorBooks(c *gin.Context) {
	books, err := h.store.AuthorBooks(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, books)
}

func (h *Handler) CreateAuthor(c *gin.Context) {
	var req author.AuthorRequest
	if !bind(c, &req) {
		return
	}
	response.Created(c, h.store.CreateAuthor(req))
}

func (h *Handler) UpdateAuthor(c *gin.Context) {
	var req author.AuthorRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.store.UpdateAuthor(c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, a)
}

// DeleteAuthor - 409 while the author still has books
func (h *Handler) DeleteAuthor(c *gin.Context) {
	if err := h.store.DeleteAuthor(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "Author deleted successfully")
}
