package repo

import (
	"context"
	"errors"

	"hospital-manager/internal/cache"
	"hospital-manager/internal/model"
	"hospital-manager/internal/store"
)

// Set wires one repository per record kind over a shared client and cache.
type Set struct {
	Patients     *Repo[*model.Patient]
	Doctors      *Repo[*model.Doctor]
	Appointments *Repo[*model.Appointment]
	Users        *Repo[*model.User]
	EmailLogs    *Repo[*model.EmailLog]
}

func NewSet(client *store.Client, c *cache.Cache) *Set {
	return &Set{
		Patients:     New(store.NewCollection[*model.Patient](client, "Patients"), c.Patients),
		Doctors:      New(store.NewCollection[*model.Doctor](client, "Doctors"), c.Doctors),
		Appointments: New(store.NewCollection[*model.Appointment](client, "Appointments"), c.Appointments),
		Users:        New(store.NewCollection[*model.User](client, "Users"), c.Users),
		EmailLogs:    New(store.NewCollection[*model.EmailLog](client, "EmailLogs"), c.EmailLogs),
	}
}

// LoadAll replaces every cached kind with the remote contents. A kind whose
// fetch fails is reset to empty and the error reported; the remaining kinds
// still load.
func (s *Set) LoadAll(ctx context.Context) error {
	return errors.Join(
		s.Patients.Refresh(ctx),
		s.Doctors.Refresh(ctx),
		s.Appointments.Refresh(ctx),
		s.Users.Refresh(ctx),
		s.EmailLogs.Refresh(ctx),
	)
}
