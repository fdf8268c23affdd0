package devserver

import (
	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/genre"
	"library-catalog/internal/shared/response"
)

func (h *Handler) ListGenres(c *gin.Context) {
	response.OK(c, h.store.ListGenres())
}

func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	g, err := h.store.GetGenre(id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, g)
}

func (h *Handler) CreateGenre(c *gin.Context) {
	var req genre.GenreRequest
	if !bind(c, &req) {
		return
	}
	response.Created(c, h.store.CreateGenre(req.Normalize()))
}

func (h *Handler) UpdateGenre(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req genre.GenreRequest
	if !bind(c, &req) {
		return
	}
	g, err := h.store.UpdateGenre(id, req.Normalize())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, g)
}

func (h *Handler) DeleteGenre(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteGenre(id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "Genre deleted successfully")
}
