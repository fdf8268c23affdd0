package author

import (
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/validation"
)

// Constants for validation
const MinNameLength = 2

// AuthorRequest is the body of POST /Author and PUT /Author/{id}. The API
// binds these keys case-sensitively, so they stay capitalized.
type AuthorRequest struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	BirthDate string `json:"BirthDate"`
}

// Validate checks a wire payload; the reference API runs it on every write.
func (r AuthorRequest) Validate() error {
	return AuthorForm{FirstName: r.FirstName, LastName: r.LastName, BirthDate: r.BirthDate}.Validate()
}

// AuthorForm is the editable form, birth date as typed.
type AuthorForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

func (f AuthorForm) Validate() error {
	return apperror.FromValidation(ozzo.ValidateStruct(&f,
		ozzo.Field(&f.FirstName,
			validation.Required("First name is required"),
			validation.MinLength(MinNameLength, "First name must be at least 2 characters"),
		),
		ozzo.Field(&f.LastName,
			validation.Required("Last name is required"),
			validation.MinLength(MinNameLength, "Last name must be at least 2 characters"),
		),
		ozzo.Field(&f.BirthDate,
			validation.Required("Birth date is required"),
			validation.Date("Invalid date"),
		),
	))
}

// ToRequest validates, trims and normalizes the birth date to RFC 3339.
func (f AuthorForm) ToRequest() (AuthorRequest, error) {
	if err := f.Validate(); err != nil {
		return AuthorRequest{}, err
	}
	born, _ := validation.ParseDate(f.BirthDate)
	return AuthorRequest{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		BirthDate: born.UTC().Format(time.RFC3339),
	}, nil
}

// FormFromAuthor pre-fills an edit form with the date part only.
func FormFromAuthor(a Author) AuthorForm {
	f := AuthorForm{FirstName: a.FirstName, LastName: a.LastName, BirthDate: a.BirthDate}
	if born, ok := a.Born(); ok {
		f.BirthDate = born.Format(time.DateOnly)
	}
	return f
}

// AuthorWithBooks - author detail page: the author and their books, read together.
type AuthorWithBooks struct {
	Author Author      `json:"author"`
	Books  []book.Book `json:"books"`
}
