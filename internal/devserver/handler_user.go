package devserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/policy"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

// ════════════════════════════════════════════════════════════════
// AUTH: POST /User/login, POST /User/register
// ════════════════════════════════════════════════════════════════

func (h *Handler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.store.Authenticate(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(u.ID, u.Email, string(u.Role()))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, user.LoginResponse{Token: token, User: *u})
}

// Register is public. The admin flag is honored only when the request
// carries an admin token.
func (h *Handler) Register(c *gin.Context) {
	var req user.UserRequest
	if !bind(c, &req) {
		return
	}
	req = req.Normalize()
	if req.IsAdmin && !h.bearerIsAdmin(c) {
		fail(c, ErrAdminFlagReserved)
		return
	}

	u, err := h.store.CreateUser(req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, u)
}

func (h *Handler) bearerIsAdmin(c *gin.Context) bool {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	claims, err := h.tokens.ValidateToken(strings.TrimSpace(token))
	return err == nil && claims.Role == string(policy.RoleAdmin)
}

// ════════════════════════════════════════════════════════════════
// ACCOUNTS
// ════════════════════════════════════════════════════════════════

func (h *Handler) ListUsers(c *gin.Context) {
	response.OK(c, h.store.ListUsers())
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.store.GetUser(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, u)
}

// UpdateUser - self or admin; only an admin may change the admin flag.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req user.UserRequest
	if !bind(c, &req) {
		return
	}
	req = req.Normalize()

	id := c.Param("id")
	current, err := h.store.GetUser(id)
	if err != nil {
		fail(c, err)
		return
	}
	if !middleware.IsAdmin(c) && req.IsAdmin != current.IsAdmin {
		fail(c, ErrAdminFlagReserved)
		return
	}

	u, err := h.store.UpdateUser(id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == middleware.UserID(c) {
		fail(c, apperror.ErrSelfDelete)
		return
	}
	if err := h.store.DeleteUser(id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "User deleted successfully")
}

// ════════════════════════════════════════════════════════════════
// SAVED BOOKS: /User/:id/saved-books[/:bookId]
// ════════════════════════════════════════════════════════════════

func (h *Handler) ListSaved(c *gin.Context) {
	books, err := h.store.ListSaved(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, books)
}

func (h *Handler) AddSaved(c *gin.Context) {
	b, err := h.store.AddSaved(c.Param("id"), c.Param("bookId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) RemoveSaved(c *gin.Context) {
	if err := h.store.RemoveSaved(c.Param("id"), c.Param("bookId")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, "Book removed from saved list")
}
