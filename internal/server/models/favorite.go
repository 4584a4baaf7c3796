package models

// FavoriteListing is a favorites entry joined with the listing it points at.
type FavoriteListing struct {
	ListingID int64
	Address   string
}
