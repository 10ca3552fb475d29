package catalog

// Lesson is a catalog entry as served by the remote lessons store.
// Spaces is remaining capacity; it is decremented and incremented
// only through the inventory ledger.
type Lesson struct {
	ID       string  `json:"_id"`
	Subject  string  `json:"subject"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Spaces   int     `json:"spaces"`
}
