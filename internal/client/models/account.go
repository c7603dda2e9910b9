// Package models defines the wire shapes exchanged with the GigLine backend.
package models

// Role classifies an account: clients post jobs, workers apply to them.
type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
)

// Account is the authenticated user's profile.
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AuthResponse is the body returned by login, register and refresh calls.
type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	User         *Account `json:"user,omitempty"`
}
