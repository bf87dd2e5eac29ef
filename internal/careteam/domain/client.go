package domain

import "time"

// Client is a care recipient record shared by a care team.
type Client struct {
	ID        string
	FullName  string
	Email     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
