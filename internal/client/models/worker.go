package models

// Worker is a browsable worker profile.
type Worker struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	City       string   `json:"city"`
	Skills     []string `json:"skills"`
	HourlyRate float64  `json:"hourly_rate"`
	Rating     float64  `json:"rating"`
	JobsDone   int      `json:"jobs_done"`
	Available  bool     `json:"available"`
}

// WorkerFilter narrows worker browsing. Zero-valued fields are not sent.
type WorkerFilter struct {
	Skill   string
	City    string
	MaxRate float64
	Page    int
}

// WorkerList is a paginated worker listing response.
type WorkerList struct {
	Results []Worker `json:"results"`
	Count   int      `json:"count"`
	Page    int      `json:"page"`
}

// HireRequestStatus tracks a direct-hire request.
type HireRequestStatus string

const (
	HireRequestPending  HireRequestStatus = "pending"
	HireRequestAccepted HireRequestStatus = "accepted"
	HireRequestDeclined HireRequestStatus = "declined"
)

// HireRequest is a client's direct-hire request addressed to a worker.
type HireRequest struct {
	ID        string            `json:"id"`
	JobID     string            `json:"job_id"`
	WorkerID  string            `json:"worker_id"`
	ClientID  string            `json:"client_id"`
	Message   string            `json:"message,omitempty"`
	Status    HireRequestStatus `json:"status"`
	CreatedAt string            `json:"created_at,omitempty"`
}
