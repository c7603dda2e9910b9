package models

// EarningsSummary aggregates a worker's earnings to date.
type EarningsSummary struct {
	Total     float64 `json:"total"`
	Pending   float64 `json:"pending"`
	PaidOut   float64 `json:"paid_out"`
	ThisMonth float64 `json:"this_month"`
	Currency  string  `json:"currency"`
}

// EarningsEntry is a single completed-and-paid job line item.
type EarningsEntry struct {
	ID       string  `json:"id"`
	JobID    string  `json:"job_id"`
	JobTitle string  `json:"job_title"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	PaidAt   string  `json:"paid_at,omitempty"`
	Status   string  `json:"status"`
}
