package author

// Fallback messages when the API gives no reason
const (
	MsgFetchAuthors          = "Failed to fetch authors"
	MsgFetchAuthorsWithCount = "Failed to fetch authors with book count"
	MsgFetchAuthor           = "Failed to fetch author"
	MsgFetchAuthorBooks      = "Failed to fetch author's books"
	MsgCreateAuthor          = "Failed to create author"
	MsgUpdateAuthor          = "Failed to update author"
	MsgDeleteAuthor          = "Failed to delete author"
)
