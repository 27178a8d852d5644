package domain

import "time"

// Client is a single intake submission. Records are immutable once stored.
type Client struct {
	ID          string
	FullName    string
	Email       string // trimmed, lowercased, unique
	PhoneNumber string // canonical +1-XXX-XXX-XXXX
	SubmittedAt time.Time
}

// Stats summarises the stored submissions for the admin dashboard.
type Stats struct {
	TotalClients      int64
	RecentSubmissions int64
}
