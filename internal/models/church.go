package models

import "time"

type Church struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	RegionCode  string `json:"region_code"`
	CityCode    string `json:"city_code"`
	CoverPath   string `json:"cover_path"`
	OwnerID     int    `json:"owner_id"` // staff account that manages the listing
	IsApproved  bool   `json:"is_approved"`
	IsActive    bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service — a bookable offering of a church (baptism, wedding, blessing, ...).
type Service struct {
	ID                 int64  `json:"id"`
	ChurchID           int64  `json:"church_id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	DurationMinutes    int    `json:"duration_minutes"`
	AdvanceBookingDays int    `json:"advance_booking_days"` // how far ahead a date may be requested
	IsActive           bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Availability — a date-level closure for a church. A row with IsClosed set
// rejects bookings on that date outright.
type Availability struct {
	ID       int64     `json:"id"`
	ChurchID int64     `json:"church_id"`
	Date     time.Time `json:"date"`
	IsClosed bool      `json:"is_closed"`
	Reason   string    `json:"reason"`
}
