package author

import (
	"strings"
	"time"

	"library-catalog/internal/validation"
)

// Author as the API returns it. BookCount is a server-side projection, only
// filled by the with-book-count listing; it is never sent back.
type Author struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
	BookCount int    `json:"bookCount"`
}

// FullName - "First Last"
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// HasBooks is the delete-blocking condition.
func (a *Author) HasBooks() bool {
	return a.BookCount > 0
}

// Born parses BirthDate with the accepted layouts.
func (a *Author) Born() (time.Time, bool) {
	return validation.ParseDate(a.BirthDate)
}
