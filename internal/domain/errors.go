package domain

import "errors"

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrReservationConflict = errors.New("reservation overlaps an existing reservation")
)
