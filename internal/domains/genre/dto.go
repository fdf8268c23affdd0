package genre

import (
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/validation"
)

// GenreRequest - POST /Genre, PUT /Genre/{id}
type GenreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r GenreRequest) Validate() error {
	return apperror.FromValidation(ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Name, validation.Required("Name is required")),
	))
}

// Normalize trims both fields.
func (r GenreRequest) Normalize() GenreRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	return r
}
