package domain

import "time"

// Vehicle belongs to a vehicle-owner account.
type Vehicle struct {
	ID        string
	OwnerID   string
	Make      string
	Model     string
	Year      int
	Plate     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
