package storefront

// DefaultPageSize is the number of products requested per page.
const DefaultPageSize = 8

// DirectionPrevious asks for the page before Cursor.
const DirectionPrevious = "previous"

// PageParams selects a window of products. The zero value is the first page.
type PageParams struct {
	Cursor    string
	Direction string
}

// Backward reports whether the page ends at Cursor rather than starting after it.
func (p PageParams) Backward() bool {
	return p.Cursor != "" && p.Direction == DirectionPrevious
}

// variables returns the connection arguments for a page of size products:
// {last, startCursor} when paging backward, {first, endCursor} otherwise.
func (p PageParams) variables(size int) map[string]any {
	if size <= 0 {
		size = DefaultPageSize
	}

	if p.Backward() {
		return map[string]any{"last": size, "startCursor": p.Cursor}
	}

	vars := map[string]any{"first": size}
	if p.Cursor != "" {
		vars["endCursor"] = p.Cursor
	}
	return vars
}
