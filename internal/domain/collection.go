package domain

// Collection is a storefront collection with one page of its products.
type Collection struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Products    []Product `json:"products"`
	PageInfo    PageInfo  `json:"page_info"`
}

// CatalogHandle is the pseudo handle that addresses every product in the shop.
const CatalogHandle = "all"

// IsCatalogHandle reports whether handle addresses the whole-shop catalog.
func IsCatalogHandle(handle string) bool {
	return handle == CatalogHandle
}

// IsCatalog reports whether the collection is the whole-shop catalog.
func (c *Collection) IsCatalog() bool {
	return IsCatalogHandle(c.Handle)
}

// PageInfo describes the cursor window a page of products was taken from.
type PageInfo struct {
	HasPreviousPage bool   `json:"has_previous_page"`
	HasNextPage     bool   `json:"has_next_page"`
	StartCursor     string `json:"start_cursor,omitempty"`
	EndCursor       string `json:"end_cursor,omitempty"`
}
