package expense

// DateLayout is the calendar-date format used on records. Dates carry no
// time-of-day and no timezone; all bucketing compares these strings directly.
const DateLayout = "2006-01-02"

// Record is one user-entered expense. Immutable once created except for
// full replacement on edit. Field names match the persisted JSON contract.
type Record struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Amount    float64  `json:"amount"`
	Category  Category `json:"category"`
	Date      string   `json:"date"`      // YYYY-MM-DD, when the expense occurred
	CreatedAt int64    `json:"createdAt"` // epoch milliseconds, assigned once
}

// Draft is user input for a new record, before id and createdAt are assigned.
type Draft struct {
	Title    string
	Amount   float64
	Category Category
	Date     string
}
