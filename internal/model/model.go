package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every record kind stored in the remote database.
// EnsureID assigns a fresh id when the record does not carry one yet, so the
// remote key and the id field agree after a create.
type Entity interface {
	EntityID() uuid.UUID
	EnsureID()
}

// Named is implemented by kinds that can be looked up by a human-entered
// name. Lookups are case-insensitive; duplicate names are not distinguished,
// the first match wins.
type Named interface {
	DisplayName() string
}

type Role string

const (
	RolePatient Role = "Patient"
	RoleDoctor  Role = "Doctor"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusAttended  AppointmentStatus = "Attended"
	StatusCanceled  AppointmentStatus = "Canceled"
)

// Terminal reports whether no further transition is allowed. Scheduled may
// move to Attended or Canceled; those two are final.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusAttended || s == StatusCanceled
}

// Person holds the fields shared by patients and doctors. DocumentNumber is
// a natural key, unique within its kind.
type Person struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	DocumentNumber string    `json:"documentNumber"`
}

func (p *Person) EntityID() uuid.UUID { return p.ID }

func (p *Person) EnsureID() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
}

func (p *Person) DisplayName() string { return p.Name }

type Patient struct {
	Person
	AppointmentIDs []uuid.UUID `json:"appointmentIds"`
}

type Doctor struct {
	Person
	Specialization string      `json:"specialization"`
	AppointmentIDs []uuid.UUID `json:"appointmentIds"`
}

type Appointment struct {
	ID        uuid.UUID         `json:"id"`
	PatientID uuid.UUID         `json:"patientId"`
	DoctorID  uuid.UUID         `json:"doctorId"`
	Date      time.Time         `json:"appointmentDate"`
	Status    AppointmentStatus `json:"status"`
}

func (a *Appointment) EntityID() uuid.UUID { return a.ID }

func (a *Appointment) EnsureID() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	LinkedID     uuid.UUID `json:"entityId"`
}

func (u *User) EntityID() uuid.UUID { return u.ID }

func (u *User) EnsureID() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
}

func (u *User) DisplayName() string { return u.Name }

type EmailStatus string

const (
	EmailSent    EmailStatus = "Sent"
	EmailNotSent EmailStatus = "NotSent"
)

type EmailLog struct {
	ID            uuid.UUID   `json:"id"`
	AppointmentID uuid.UUID   `json:"appointmentId"`
	Recipient     string      `json:"recipientEmail"`
	SentAt        time.Time   `json:"sentDate"`
	Status        EmailStatus `json:"status"`
}

func (l *EmailLog) EntityID() uuid.UUID { return l.ID }

func (l *EmailLog) EnsureID() {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
}
