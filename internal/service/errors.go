package service

import (
	"errors"
	"fmt"

	"hospital-manager/internal/repo"
)

var (
	// ErrNotFound mirrors the repository sentinel for natural-key misses.
	ErrNotFound = repo.ErrNotFound

	ErrDuplicateDocument = errors.New("document number already registered")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrBadCredentials    = errors.New("incorrect username or password")
	ErrNoDoctorAssigned  = errors.New("no doctor could be assigned")
	ErrAppointmentFinal  = errors.New("appointment is already attended or canceled")
)

// SlotTakenError rejects a booking that falls inside another appointment's
// exclusion window for the same doctor.
type SlotTakenError struct {
	DoctorName string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("doctor %s is not available at that date/time", e.DoctorName)
}
