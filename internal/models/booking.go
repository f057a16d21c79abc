package models

import "time"

type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingReviewed  BookingStatus = "reviewed"
	BookingApproved  BookingStatus = "approved"
	BookingCompleted BookingStatus = "completed"
	BookingDeclined  BookingStatus = "declined"
	BookingCanceled  BookingStatus = "canceled"
)

// ActiveBookingStatuses are the statuses that take part in date-conflict
// detection. Completed/declined/canceled bookings never conflict.
var ActiveBookingStatuses = []BookingStatus{BookingRequested, BookingReviewed, BookingApproved}

type Booking struct {
	ID        int64         `json:"id"`
	RefCode   string        `json:"ref_code"` // uuid shown to the user
	ChurchID  int64         `json:"church_id"`
	ServiceID int64         `json:"service_id"`
	UserID    int           `json:"user_id"`
	Date      time.Time     `json:"date"` // date only, midnight UTC
	Status    BookingStatus `json:"status"`
	Note      string        `json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingFilter struct {
	ChurchID int64
	UserID   int
	Status   BookingStatus
	Limit    int
	Offset   int
}
