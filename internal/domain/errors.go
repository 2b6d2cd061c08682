package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")

	ErrNoSearchPerformed = errors.New("no search performed in this session")
	ErrInvalidItinerary  = errors.New("itinerary index not in last search result")
	ErrFlightFull        = errors.New("flight is fully booked")
	ErrDayConflict       = errors.New("a reservation already exists for that day")
	ErrBookingFailed     = errors.New("booking failed")

	ErrInvalidReservation = errors.New("no such reservation for this customer")
	ErrCancelFailed       = errors.New("cancellation failed")
)
