package genre

import "strings"

// UnknownName is the sentinel genre books fall back to. It is real data but is
// never offered in a genre picker.
const UnknownName = "unknown"

// Genre - numeric id, required name, optional description
type Genre struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// IsUnknown reports the sentinel, case-insensitively.
func (g *Genre) IsUnknown() bool {
	return strings.EqualFold(strings.TrimSpace(g.Name), UnknownName)
}

// Selectable drops the sentinel and keeps the original order.
func Selectable(genres []Genre) []Genre {
	out := make([]Genre, 0, len(genres))
	for _, g := range genres {
		if !g.IsUnknown() {
			out = append(out, g)
		}
	}
	return out
}
