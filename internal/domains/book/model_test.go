package book

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/shared/apperror"
)

func TestPriceIsSentAsNumber(t *testing.T) {
	year := 1965
	b := Book{ID: "b-1", Title: "Dune", AuthorID: "a-1", PublishYear: &year, Price: decimal.RequireFromString("9.99"), GenreIDs: []int{2}}

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":9.99`)
	assert.Contains(t, string(raw), `"publishYear":1965`)
	assert.NotContains(t, string(raw), "Price")

	var back Book
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, b.Price.Equal(back.Price))
	assert.Equal(t, b.GenreIDs, back.GenreIDs)

	raw, err = json.Marshal(BookRequest{Title: "Dune", Price: decimal.RequireFromString("0.5")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":0.5`)
}

func TestPriceEncodingLeavesDecimalDefaultsAlone(t *testing.T) {
	_, err := json.Marshal(Book{Price: decimal.NewFromInt(3)})
	require.NoError(t, err)

	assert.False(t, decimal.MarshalJSONWithoutQuotes)
	raw, err := json.Marshal(decimal.RequireFromString("1.25"))
	require.NoError(t, err)
	assert.Equal(t, `"1.25"`, string(raw))
}

func TestFilterOnGenreZero(t *testing.T) {
	f := ByGenre(0)
	assert.False(t, f.IsEmpty())
	assert.Equal(t, "0", f.Query().Get("filterGenreId"))

	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, Filter{}.Query().Has("filterGenreId"))

	parsed, err := FilterFromQuery(f.Query())
	require.NoError(t, err)
	require.NotNil(t, parsed.GenreID)
	assert.Equal(t, 0, *parsed.GenreID)

	_, err = FilterFromQuery(map[string][]string{"filterGenreId": {"scifi"}})
	assert.True(t, apperror.IsValidation(err))
}
