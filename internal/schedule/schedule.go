// Package schedule decides whether a doctor can host a new appointment at a
// candidate time.
package schedule

import (
	"time"

	"github.com/google/uuid"

	"hospital-manager/internal/cache"
	"hospital-manager/internal/model"
)

// MinGap is the minimum separation between two appointments of one doctor.
// Two bookings closer than or exactly this far apart conflict.
const MinGap = 60 * time.Minute

type Checker struct {
	appointments *cache.Table[*model.Appointment]
	doctors      *cache.Table[*model.Doctor]
}

func NewChecker(appointments *cache.Table[*model.Appointment], doctors *cache.Table[*model.Doctor]) *Checker {
	return &Checker{appointments: appointments, doctors: doctors}
}

// Available reports whether the doctor is free at the candidate time. Every
// existing appointment for the doctor counts, canceled ones included: a
// canceled slot still blocks rebooking at that time. On rejection the
// doctor's display name is returned for the caller's message.
func (c *Checker) Available(doctorID uuid.UUID, at time.Time) (bool, string) {
	for _, a := range c.appointments.Values() {
		if a.DoctorID != doctorID {
			continue
		}
		if gap := absDuration(a.Date.Sub(at)); gap <= MinGap {
			return false, c.doctorName(doctorID)
		}
	}
	return true, ""
}

func (c *Checker) doctorName(id uuid.UUID) string {
	_, d, ok := c.doctors.Find(func(d *model.Doctor) bool { return d.ID == id })
	if !ok {
		return id.String()
	}
	return d.DisplayName()
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
