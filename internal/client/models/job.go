package models

// JobStatus tracks a job posting through its lifecycle.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Job is a posted gig as returned by the backend.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	Rate        float64   `json:"rate"`
	RateUnit    string    `json:"rate_unit"` // "hour" or "fixed"
	Status      JobStatus `json:"status"`
	ClientID    string    `json:"client_id"`
	StartsAt    string    `json:"starts_at,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
}

// JobDraft is the payload for creating a job posting.
type JobDraft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	Rate        float64 `json:"rate"`
	RateUnit    string  `json:"rate_unit"`
	StartsAt    string  `json:"starts_at,omitempty"`
}

// JobFilter narrows job listings. Zero-valued fields are not sent.
type JobFilter struct {
	Category string
	City     string
	MinRate  float64
	Page     int
}

// Application is a worker's application to a job.
type Application struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	WorkerID  string `json:"worker_id"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// JobList is a paginated job listing response.
type JobList struct {
	Results []Job `json:"results"`
	Count   int   `json:"count"`
	Page    int   `json:"page"`
}
