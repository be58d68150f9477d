package domain

import "time"

// Product is a part or accessory listed by a seller.
type Product struct {
	ID          string
	SellerID    string
	Name        string
	Description string
	PriceCents  int64
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnershipFact records who owns a resource and which role that ownership
// implies. Supplied by the persistence layer; the auth gateway only consumes
// it for fine-grained handler decisions.
type OwnershipFact struct {
	ResourceID   string `json:"resource_id"`
	OwnerID      string `json:"owner_id"`
	RequiredRole Role   `json:"required_role"`
}
