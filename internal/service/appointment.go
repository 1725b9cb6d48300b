package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"hospital-manager/internal/gemini"
	"hospital-manager/internal/mail"
	"hospital-manager/internal/model"
	"hospital-manager/internal/repo"
	"hospital-manager/internal/schedule"
)

// DoctorSelector ranks the available doctors for a symptom description.
// Satisfied by the gemini client.
type DoctorSelector interface {
	SelectDoctor(ctx context.Context, symptoms string, doctors []*model.Doctor) (*gemini.Selection, error)
}

// Notifier delivers appointment emails best-effort.
type Notifier interface {
	SendAppointmentEmail(ctx context.Context, appt *model.Appointment, recipient string, doctor *model.Doctor, action mail.Action)
}

type AppointmentService struct {
	appointments *repo.Repo[*model.Appointment]
	doctors      *repo.Repo[*model.Doctor]
	patients     *repo.Repo[*model.Patient]
	checker      *schedule.Checker
	selector     DoctorSelector
	notifier     Notifier
}

func NewAppointmentService(
	appointments *repo.Repo[*model.Appointment],
	doctors *repo.Repo[*model.Doctor],
	patients *repo.Repo[*model.Patient],
	checker *schedule.Checker,
	selector DoctorSelector,
	notifier Notifier,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		checker:      checker,
		selector:     selector,
		notifier:     notifier,
	}
}

// Create books an appointment for the patient: the selector picks a doctor
// for the symptoms, the slot is checked against the doctor's existing
// appointments, the record is written, both appointment-id lists are
// patched, and a confirmation email goes out best-effort.
func (s *AppointmentService) Create(ctx context.Context, patientID uuid.UUID, symptoms string, at time.Time) (*model.Appointment, *gemini.Selection, error) {
	sel, err := s.selector.SelectDoctor(ctx, symptoms, s.doctors.All())
	if err != nil {
		return nil, nil, err
	}
	if sel.SelectedDoctorID == uuid.Nil {
		return nil, sel, ErrNoDoctorAssigned
	}

	doctorKey, doctor, ok := s.doctors.Find(func(d *model.Doctor) bool {
		return d.ID == sel.SelectedDoctorID
	})
	if !ok {
		// the model answered with an id we don't know
		return nil, sel, ErrNoDoctorAssigned
	}

	if free, _ := s.checker.Available(doctor.ID, at); !free {
		return nil, sel, &SlotTakenError{DoctorName: doctor.Name}
	}

	appt := &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      at,
		Status:    model.StatusScheduled,
	}
	if _, err := s.appointments.Create(ctx, appt); err != nil {
		return nil, sel, err
	}

	if err := s.appendAppointmentToDoctor(ctx, doctorKey, doctor, appt.ID); err != nil {
		return nil, sel, err
	}
	if err := s.appendAppointmentToPatient(ctx, patientID, appt.ID); err != nil {
		return nil, sel, err
	}

	if p, err := s.findPatient(patientID); err == nil {
		s.notifier.SendAppointmentEmail(ctx, appt, p.Email, doctor, mail.Confirmation)
	}
	return appt, sel, nil
}

// appendAppointmentToDoctor patches the doctor's appointment-id list. The
// list is array-valued, so the store writes it as a full field replacement.
func (s *AppointmentService) appendAppointmentToDoctor(ctx context.Context, key string, d *model.Doctor, apptID uuid.UUID) error {
	updated := *d
	updated.AppointmentIDs = append(append([]uuid.UUID{}, d.AppointmentIDs...), apptID)
	return s.doctors.UpdateField(ctx, key, "appointmentIds", updated.AppointmentIDs, &updated)
}

func (s *AppointmentService) appendAppointmentToPatient(ctx context.Context, patientID, apptID uuid.UUID) error {
	key, p, ok := s.patients.Find(func(p *model.Patient) bool { return p.ID == patientID })
	if !ok {
		return ErrNotFound
	}
	updated := *p
	updated.AppointmentIDs = append(append([]uuid.UUID{}, p.AppointmentIDs...), apptID)
	return s.patients.UpdateField(ctx, key, "appointmentIds", updated.AppointmentIDs, &updated)
}

// Cancel moves a scheduled appointment to Canceled and notifies the patient
// best-effort. Attended and Canceled are terminal.
func (s *AppointmentService) Cancel(ctx context.Context, key string) error {
	return s.transition(ctx, key, model.StatusCanceled, true)
}

// MarkAttended closes a scheduled appointment as attended.
func (s *AppointmentService) MarkAttended(ctx context.Context, key string) error {
	return s.transition(ctx, key, model.StatusAttended, false)
}

func (s *AppointmentService) transition(ctx context.Context, key string, to model.AppointmentStatus, notify bool) error {
	appt, ok := s.appointments.Get(key)
	if !ok {
		return ErrNotFound
	}
	if appt.Status.Terminal() {
		return ErrAppointmentFinal
	}

	updated := *appt
	updated.Status = to
	if err := s.appointments.Update(ctx, key, &updated); err != nil {
		return err
	}

	if notify {
		p, perr := s.findPatient(updated.PatientID)
		d, derr := s.findDoctor(updated.DoctorID)
		if perr == nil && derr == nil {
			s.notifier.SendAppointmentEmail(ctx, &updated, p.Email, d, mail.Cancellation)
		}
	}
	return nil
}

func (s *AppointmentService) findPatient(id uuid.UUID) (*model.Patient, error) {
	_, p, ok := s.patients.Find(func(p *model.Patient) bool { return p.ID == id })
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *AppointmentService) findDoctor(id uuid.UUID) (*model.Doctor, error) {
	_, d, ok := s.doctors.Find(func(d *model.Doctor) bool { return d.ID == id })
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// Scheduled lists keyed scheduled appointments, ordered by time, for the
// cancellation picker.
func (s *AppointmentService) Scheduled() []Keyed {
	var out []Keyed
	for key, a := range s.appointments.Entries() {
		if a.Status == model.StatusScheduled {
			out = append(out, Keyed{Key: key, Appointment: a})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Appointment.Date.Before(out[j].Appointment.Date) })
	return out
}

// Keyed pairs an appointment with its remote key.
type Keyed struct {
	Key         string
	Appointment *model.Appointment
}

func (s *AppointmentService) ListByPatient(patientID uuid.UUID) []*model.Appointment {
	return s.list(func(a *model.Appointment) bool { return a.PatientID == patientID })
}

func (s *AppointmentService) ListByDoctor(doctorID uuid.UUID) []*model.Appointment {
	return s.list(func(a *model.Appointment) bool { return a.DoctorID == doctorID })
}

func (s *AppointmentService) ListAll() []*model.Appointment {
	return s.list(func(*model.Appointment) bool { return true })
}

func (s *AppointmentService) list(keep func(*model.Appointment) bool) []*model.Appointment {
	var out []*model.Appointment
	for _, a := range s.appointments.All() {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
