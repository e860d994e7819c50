package domain

import (
	"context"
	"time"
)

const (
	// ShowingDuration is the fixed length of every booking window. There are
	// no variable-length slots; end time is always derived from start time.
	ShowingDuration = 2 * time.Hour

	// MinBookingLead is the minimum gap between the moment a booking is made
	// and the start of the showing.
	MinBookingLead = 2 * time.Hour
)

type Reservation struct {
	ID         int
	UserID     int
	MovieID    int
	MovieTitle string
	StartTime  time.Time
	EndTime    time.Time
	CreatedAt  time.Time
}

// BookingWindow returns the half-open [start, end) window occupied by a
// showing beginning at start.
func BookingWindow(start time.Time) (time.Time, time.Time) {
	return start, start.Add(ShowingDuration)
}

// Overlaps reports whether the reservation's window intersects the half-open
// candidate window [start, end). Windows are half-open, so a reservation
// ending exactly when another begins does not overlap.
func (r Reservation) Overlaps(start, end time.Time) bool {
	// candidate starts inside the existing window
	if !r.StartTime.After(start) && start.Before(r.EndTime) {
		return true
	}

	// candidate ends inside the existing window
	if r.StartTime.Before(end) && !end.After(r.EndTime) {
		return true
	}

	// candidate fully contains the existing window
	if !start.After(r.StartTime) && !r.EndTime.After(end) {
		return true
	}

	return false
}

// FindConflict returns the first reservation whose window overlaps
// [start, end), or nil when there is no conflict.
func FindConflict(existing []Reservation, start, end time.Time) *Reservation {
	for i := range existing {
		if existing[i].Overlaps(start, end) {
			return &existing[i]
		}
	}

	return nil
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetAllByUserId(ctx context.Context, userId int) ([]Reservation, error)
	DeleteByIdAndUserId(ctx context.Context, reservationId, userId int) error
}
