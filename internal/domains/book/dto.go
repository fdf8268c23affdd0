package book

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/validation"
)

// ========================================
// WRITE DTOs
// ========================================

// BookRequest is the body of POST /Book and PUT /Book/{id}.
type BookRequest struct {
	Title       string          `json:"title"`
	AuthorID    string          `json:"authorId"`
	ISBN        string          `json:"isbn"`
	PublishYear *int            `json:"publishYear,omitempty"`
	Price       decimal.Decimal `json:"price"`
	GenreIDs    []int           `json:"genreIds"`
}

// MarshalJSON sends the price as a JSON number.
func (r BookRequest) MarshalJSON() ([]byte, error) {
	type wire BookRequest
	return json.Marshal(struct {
		wire
		Price json.Number `json:"price"`
	}{wire(r), priceNumber(r.Price)})
}

// Validate checks a wire payload; the reference API runs it on every write.
func (r BookRequest) Validate() error {
	return apperror.FromValidation(ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Title, validation.Required("Title is required")),
		ozzo.Field(&r.AuthorID, validation.Required("Author is required")),
		ozzo.Field(&r.GenreIDs, validation.NotEmptyIDs("At least one genre is required")),
		ozzo.Field(&r.PublishYear, ozzo.By(func(value interface{}) error {
			year, _ := value.(*int)
			if year != nil && (*year < 0 || *year > validation.Now().Year()) {
				return errors.New("Invalid year")
			}
			return nil
		})),
		ozzo.Field(&r.Price, ozzo.By(func(value interface{}) error {
			price, _ := value.(decimal.Decimal)
			if price.IsNegative() {
				return errors.New("Price is required and must be a non-negative number")
			}
			return nil
		})),
	))
}

// BookForm is what a presentation layer collects: numbers still as text.
type BookForm struct {
	Title       string `json:"title"`
	AuthorID    string `json:"authorId"`
	ISBN        string `json:"isbn"`
	PublishYear string `json:"publishYear"`
	Price       string `json:"price"`
	GenreIDs    []int  `json:"genreIds"`
}

// Validate runs the book form rules. Every field is checked; the result is an
// *apperror.ValidationError keyed by the json field name.
func (f BookForm) Validate() error {
	return apperror.FromValidation(ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Title, validation.Required("Title is required")),
		ozzo.Field(&f.AuthorID, validation.Required("Author is required")),
		ozzo.Field(&f.GenreIDs, validation.NotEmptyIDs("At least one genre is required")),
		ozzo.Field(&f.PublishYear, validation.Year("Invalid year")),
		ozzo.Field(&f.Price, validation.NonNegativeAmount("Price is required and must be a non-negative number")),
	))
}

// ToRequest validates and normalizes the form into the wire payload.
func (f BookForm) ToRequest() (BookRequest, error) {
	if err := f.Validate(); err != nil {
		return BookRequest{}, err
	}
	price, _ := validation.ParseAmount(f.Price)
	req := BookRequest{
		Title:    strings.TrimSpace(f.Title),
		AuthorID: strings.TrimSpace(f.AuthorID),
		ISBN:     strings.TrimSpace(f.ISBN),
		Price:    price,
		GenreIDs: append([]int(nil), f.GenreIDs...),
	}
	if year, ok := validation.ParseYear(f.PublishYear); ok {
		req.PublishYear = &year
	}
	return req, nil
}

// FormFromBook pre-fills an edit form.
func FormFromBook(b Book) BookForm {
	f := BookForm{
		Title:    b.Title,
		AuthorID: b.AuthorID,
		ISBN:     b.ISBN,
		Price:    b.Price.String(),
		GenreIDs: append([]int(nil), b.GenreIDs...),
	}
	if b.PublishYear != nil {
		f.PublishYear = strconv.Itoa(*b.PublishYear)
	}
	return f
}

// ========================================
// FILTER
// ========================================

// Sort fields understood by the API. Values are passed through untouched, the
// server owns the ordering.
const (
	SortByTitle       = "title"
	SortByPublishYear = "publishYear"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filter - query parameters of GET /Book/filter
type Filter struct {
	TitleSubstring string
	AuthorID       string
	GenreID        *int // nil: no genre filter; ids are opaque, 0 included
	SortBy         string
	SortOrder      string
}

// IsEmpty reports a filter with nothing set; it is answered by List.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.TitleSubstring) == "" && f.AuthorID == "" && f.GenreID == nil &&
		f.SortBy == "" && f.SortOrder == ""
}

// Validate only checks what the client owns: the order keyword.
func (f Filter) Validate() error {
	if f.SortOrder != "" && f.SortOrder != SortAsc && f.SortOrder != SortDesc {
		return apperror.NewValidationError("sortOrder", ErrInvalidSortOrder.Error())
	}
	return nil
}

// Query assembles the URL parameters; unset fields are omitted.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.TitleSubstring); s != "" {
		q.Set("searchTitle", s)
	}
	if f.AuthorID != "" {
		q.Set("filterAuthorId", f.AuthorID)
	}
	if f.GenreID != nil {
		q.Set("filterGenreId", strconv.Itoa(*f.GenreID))
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	return q
}

// FilterFromQuery is the inverse of Query (used by the reference API).
func FilterFromQuery(q url.Values) (Filter, error) {
	f := Filter{
		TitleSubstring: q.Get("searchTitle"),
		AuthorID:       q.Get("filterAuthorId"),
		SortBy:         q.Get("sortBy"),
		SortOrder:      strings.ToLower(q.Get("sortOrder")),
	}
	if raw := q.Get("filterGenreId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, apperror.NewValidationError("filterGenreId", ErrInvalidGenreFilter.Error())
		}
		f.GenreID = &id
	}
	return f, nil
}

// ByGenre is the filter for one genre id.
func ByGenre(genreID int) Filter {
	return Filter{GenreID: &genreID}
}
