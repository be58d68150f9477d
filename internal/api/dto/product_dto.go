package dto

import "time"

// ProductUpsertRequest payload for creating or updating a listing.
type ProductUpsertRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
}

// ProductResponse is the public view of a listing.
type ProductResponse struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// VehicleCreateRequest payload for registering a vehicle.
type VehicleCreateRequest struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Plate string `json:"plate"`
}
