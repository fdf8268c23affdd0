package shared

// Confirmation is the body the catalog API returns for deletes and
// saved-book removals, e.g. {"message":"Book deleted"}.
type Confirmation struct {
	Message string `json:"message"`
}
