package services

import "churchconnect/internal/models"

// Allowed booking status transitions. Completion only from approved;
// decline only while under review; the requester can cancel any time before
// completion.
var BookingTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	models.BookingRequested: {models.BookingReviewed: true, models.BookingDeclined: true, models.BookingCanceled: true},
	models.BookingReviewed:  {models.BookingApproved: true, models.BookingDeclined: true, models.BookingCanceled: true},
	models.BookingApproved:  {models.BookingCompleted: true, models.BookingCanceled: true},
	models.BookingCompleted: {},
	models.BookingDeclined:  {},
	models.BookingCanceled:  {},
}

func canTransition(current, to models.BookingStatus, table map[models.BookingStatus]map[models.BookingStatus]bool) bool {
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}
