package models

const (
	SeatInfant  = "infant"
	SeatRegular = "regular"
	SeatBooster = "booster"
)

const (
	PetDog = "dog"
	PetCat = "cat"
)

// ChildSeat is one line entry in the add-on list. Adding a seat appends a new
// line with quantity 1 rather than incrementing an existing line; an entry
// whose Type is still empty is priced at zero and excluded from totals.
type ChildSeat struct {
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Pet follows the same one-line-per-entry shape as ChildSeat.
type Pet struct {
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// AddOnSelection is the ordered set of chosen extras for a draft.
type AddOnSelection struct {
	ChildSeats []ChildSeat `json:"childSeats"`
	Pets       []Pet       `json:"pets"`
}
