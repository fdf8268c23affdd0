package genre

// Fallback messages when the API gives no reason
const (
	MsgFetchGenres = "Failed to fetch genres"
	MsgFetchGenre  = "Failed to fetch genre"
	MsgCreateGenre = "Failed to create genre"
	MsgUpdateGenre = "Failed to update genre"
	MsgDeleteGenre = "Failed to delete genre"
)
