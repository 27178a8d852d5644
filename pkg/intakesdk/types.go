package intakesdk

import "time"

// SubmitClientRequest is the body of POST /clients.
type SubmitClientRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// ClientResponse is a stored submission as returned by the API.
type ClientResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmitClientResponse is the 201 body of POST /clients: the stored record
// plus a confirmation message.
type SubmitClientResponse struct {
	ClientResponse

	Message  string `json:"message"`
	ClientID string `json:"client_id"`
}

// LoginRequest is the body of POST /admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for admin endpoints. ExpiresIn is
// zero for tokens that never expire.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	Message     string `json:"message"`
}

// StatsResponse is the body of GET /admin/stats.
type StatsResponse struct {
	TotalClients      int64 `json:"total_clients"`
	RecentSubmissions int64 `json:"recent_submissions"`
}

// MessageResponse is a bare {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status ("ok" or "degraded")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists the dependencies probed by /readyz.
type HealthChecks struct {
	Store string `json:"store"`
}
