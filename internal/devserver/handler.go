package devserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/jwt"
)

// Handler serves the catalog REST contract from a Store.
type Handler struct {
	store  *Store
	tokens *jwt.Manager
}

func NewHandler(store *Store, tokens *jwt.Manager) *Handler {
	return &Handler{store: store, tokens: tokens}
}

// fail writes err with the status the catalog API uses for it.
func fail(c *gin.Context, err error) {
	status, code := toHTTPStatus(err)

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		response.ErrorWithDetails(c, status, code, err.Error(), verr.Fields)
		return
	}
	if status >= 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

// bind decodes the JSON body and runs its Validate method when it has one.
func bind[T any](c *gin.Context, dst *T) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if v, ok := any(*dst).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			fail(c, err)
			return false
		}
	}
	return true
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
