package book

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// priceNumber renders a price as a JSON number; decimal quotes it by default.
func priceNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Book is the catalog entry as the API returns it.
// AuthorName and GenreNames are read-side projections filled by the server.
type Book struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	AuthorID    string          `json:"authorId"`
	AuthorName  string          `json:"authorName,omitempty"`
	ISBN        string          `json:"isbn"`
	PublishYear *int            `json:"publishYear,omitempty"`
	Price       decimal.Decimal `json:"price"`
	GenreIDs    []int           `json:"genreIds"`
	GenreNames  []string        `json:"genreNames,omitempty"`
}

// MarshalJSON sends the price as a JSON number.
func (b Book) MarshalJSON() ([]byte, error) {
	type wire Book
	return json.Marshal(struct {
		wire
		Price json.Number `json:"price"`
	}{wire(b), priceNumber(b.Price)})
}

// HasGenre reports whether the book is tagged with genreID.
func (b *Book) HasGenre(genreID int) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
