package models

type Listing struct {
	ID          int64
	Type        string
	Price       int64
	Address     string
	Area        float64
	RoomsCount  int
	Description string
	UserID      int64
}
