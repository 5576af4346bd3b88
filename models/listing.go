package models

import "time"

// Listing is a housing listing as served by the /apartments endpoints.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Rent        float64   `json:"rent"`
	Rooms       int       `json:"rooms"`
	Furnished   bool      `json:"furnished"`
	OwnerID     int64     `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListingCreate is the JSON body of POST /apartments.
type ListingCreate struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Rent        float64 `json:"rent"`
	Rooms       int     `json:"rooms"`
	Furnished   bool    `json:"furnished"`
	ContactInfo string  `json:"contact_info"`
}

// Application is a tenant's application to a listing.
type Application struct {
	ID          int64     `json:"id"`
	ListingID   int64     `json:"apartment_id"`
	ApplicantID int64     `json:"applicant_id"`
	Applicant   string    `json:"applicant_name"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
