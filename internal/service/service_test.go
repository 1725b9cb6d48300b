package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"hospital-manager/internal/cache"
	"hospital-manager/internal/gemini"
	"hospital-manager/internal/mail"
	"hospital-manager/internal/model"
	"hospital-manager/internal/repo"
	"hospital-manager/internal/schedule"
	"hospital-manager/internal/service"
	"hospital-manager/internal/store"
	"hospital-manager/internal/store/storetest"
)

func setup(t *testing.T) (*storetest.Server, *repo.Set, *cache.Cache) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	client := store.NewClient(srv.URL, 1000, 1000)
	c := cache.New()
	return srv, repo.NewSet(client, c), c
}

func personInput(name, doc string) service.PersonInput {
	return service.PersonInput{
		Name:           name,
		Age:            34,
		Address:        "12 Elm St",
		Phone:          "555-0101",
		Email:          strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@example.com",
		DocumentNumber: doc,
	}
}

func TestRegisterPatientDuplicateDocument(t *testing.T) {
	srv, repos, _ := setup(t)
	svc := service.NewPatientService(repos.Patients)
	ctx := context.Background()

	if _, err := svc.Register(ctx, personInput("Ada", "CC-1001")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	before := len(srv.Requests())

	_, err := svc.Register(ctx, personInput("Eve", "cc-1001"))
	if !errors.Is(err, service.ErrDuplicateDocument) {
		t.Fatalf("err = %v, want ErrDuplicateDocument", err)
	}
	if after := len(srv.Requests()); after != before {
		t.Errorf("duplicate check reached the store: %d requests, had %d", after, before)
	}
}

func TestRegisterPatientInvalidInput(t *testing.T) {
	srv, repos, _ := setup(t)
	svc := service.NewPatientService(repos.Patients)

	in := personInput("Ada", "CC-1001")
	in.Email = "not-an-address"
	if _, err := svc.Register(context.Background(), in); err == nil {
		t.Fatal("invalid email accepted")
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("validation failure reached the store: %d requests", n)
	}
}

func TestUpdatePatientPreservesIdentity(t *testing.T) {
	_, repos, _ := setup(t)
	svc := service.NewPatientService(repos.Patients)
	ctx := context.Background()

	p, err := svc.Register(ctx, personInput("Ada", "CC-1001"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	apptID := uuid.New()
	p.AppointmentIDs = []uuid.UUID{apptID}

	updated, err := svc.Update(ctx, "ada", personInput("Ada Diaz", "CC-1001"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != p.ID {
		t.Error("update changed the record id")
	}
	if len(updated.AppointmentIDs) != 1 || updated.AppointmentIDs[0] != apptID {
		t.Error("update dropped the appointment list")
	}
	if updated.Name != "Ada Diaz" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestUserRegisterAndAuthenticate(t *testing.T) {
	_, repos, _ := setup(t)
	svc := service.NewUserService(repos.Users)
	ctx := context.Background()
	linked := uuid.New()

	in := service.UserInput{Name: "Ada Diaz", Username: "ada", Password: "hunter2hunter2", Role: model.RolePatient}
	u, err := svc.Register(ctx, in, linked)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.PasswordHash == in.Password {
		t.Fatal("password stored in the clear")
	}
	if u.LinkedID != linked {
		t.Errorf("linked id = %s", u.LinkedID)
	}

	got, err := svc.Authenticate("ADA", "hunter2hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Error("authenticate returned a different user")
	}

	if _, err := svc.Authenticate("ada", "wrong password"); !errors.Is(err, service.ErrBadCredentials) {
		t.Errorf("wrong password: err = %v, want ErrBadCredentials", err)
	}
	if _, err := svc.Authenticate("nobody", "hunter2hunter2"); !errors.Is(err, service.ErrBadCredentials) {
		t.Errorf("unknown user: err = %v, want ErrBadCredentials", err)
	}
}

func TestUserRegisterDuplicateUsername(t *testing.T) {
	_, repos, _ := setup(t)
	svc := service.NewUserService(repos.Users)
	ctx := context.Background()

	in := service.UserInput{Name: "Ada Diaz", Username: "ada", Password: "hunter2hunter2", Role: model.RolePatient}
	if _, err := svc.Register(ctx, in, uuid.New()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	in.Name = "Other Ada"
	in.Username = "Ada"
	if _, err := svc.Register(ctx, in, uuid.New()); !errors.Is(err, service.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

type fakeSelector struct {
	sel   *gemini.Selection
	err   error
	calls int
}

func (f *fakeSelector) SelectDoctor(context.Context, string, []*model.Doctor) (*gemini.Selection, error) {
	f.calls++
	return f.sel, f.err
}

type notification struct {
	action    mail.Action
	recipient string
	doctor    string
}

type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) SendAppointmentEmail(_ context.Context, _ *model.Appointment, recipient string, doctor *model.Doctor, action mail.Action) {
	f.sent = append(f.sent, notification{action: action, recipient: recipient, doctor: doctor.Name})
}

type apptFixture struct {
	srv      *storetest.Server
	repos    *repo.Set
	svc      *service.AppointmentService
	notifier *fakeNotifier
	patient  *model.Patient
	doctor   *model.Doctor
}

func newApptFixture(t *testing.T, selector service.DoctorSelector) *apptFixture {
	t.Helper()
	srv, repos, c := setup(t)
	ctx := context.Background()

	patient := &model.Patient{Person: model.Person{Name: "Ada Diaz", Email: "ada@example.com"}}
	if _, err := repos.Patients.Create(ctx, patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	doctor := &model.Doctor{Specialization: "Cardiology"}
	doctor.Name = "Gray"
	if _, err := repos.Doctors.Create(ctx, doctor); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}

	notifier := &fakeNotifier{}
	checker := schedule.NewChecker(c.Appointments, c.Doctors)
	svc := service.NewAppointmentService(repos.Appointments, repos.Doctors, repos.Patients, checker, selector, notifier)
	return &apptFixture{srv: srv, repos: repos, svc: svc, notifier: notifier, patient: patient, doctor: doctor}
}

func TestCreateAppointmentUnresolvedSelector(t *testing.T) {
	f := newApptFixture(t, &fakeSelector{sel: gemini.Unresolved()})
	before := len(f.srv.Requests())

	_, sel, err := f.svc.Create(context.Background(), f.patient.ID, "headache", time.Now().Add(24*time.Hour))
	if !errors.Is(err, service.ErrNoDoctorAssigned) {
		t.Fatalf("err = %v, want ErrNoDoctorAssigned", err)
	}
	if sel == nil || sel.Reason == "" {
		t.Error("selection reason missing")
	}
	if after := len(f.srv.Requests()); after != before {
		t.Errorf("unresolved booking reached the store: %d requests, had %d", after, before)
	}
	if got := len(f.svc.ListAll()); got != 0 {
		t.Errorf("appointments created: %d", got)
	}
}

func TestCreateAppointmentUnknownDoctorID(t *testing.T) {
	f := newApptFixture(t, &fakeSelector{sel: &gemini.Selection{SelectedDoctorID: uuid.New()}})

	_, _, err := f.svc.Create(context.Background(), f.patient.ID, "headache", time.Now().Add(24*time.Hour))
	if !errors.Is(err, service.ErrNoDoctorAssigned) {
		t.Fatalf("err = %v, want ErrNoDoctorAssigned", err)
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	selector := &fakeSelector{}
	f := newApptFixture(t, selector)
	selector.sel = &gemini.Selection{SelectedDoctorID: f.doctor.ID, Reason: "cardiology fits"}
	ctx := context.Background()

	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	existing := &model.Appointment{
		PatientID: uuid.New(),
		DoctorID:  f.doctor.ID,
		Date:      at.Add(30 * time.Minute),
		Status:    model.StatusScheduled,
	}
	if _, err := f.repos.Appointments.Create(ctx, existing); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	_, _, err := f.svc.Create(ctx, f.patient.ID, "chest pain", at)
	var taken *service.SlotTakenError
	if !errors.As(err, &taken) {
		t.Fatalf("err = %v, want SlotTakenError", err)
	}
	if taken.DoctorName != "Gray" {
		t.Errorf("rejection names %q", taken.DoctorName)
	}
	if got := len(f.svc.ListAll()); got != 1 {
		t.Errorf("appointment count = %d, want only the seeded one", got)
	}
	if len(f.notifier.sent) != 0 {
		t.Error("conflicting booking sent mail")
	}
}

func TestCreateAppointmentSuccess(t *testing.T) {
	selector := &fakeSelector{}
	f := newApptFixture(t, selector)
	selector.sel = &gemini.Selection{SelectedDoctorID: f.doctor.ID, Reason: "cardiology fits"}
	ctx := context.Background()

	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	appt, sel, err := f.svc.Create(ctx, f.patient.ID, "chest pain", at)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sel.Reason != "cardiology fits" {
		t.Errorf("reason = %q", sel.Reason)
	}
	if appt.Status != model.StatusScheduled || appt.DoctorID != f.doctor.ID {
		t.Errorf("appointment = %+v", appt)
	}

	d, _ := f.repos.Doctors.Get(f.doctor.ID.String())
	if len(d.AppointmentIDs) != 1 || d.AppointmentIDs[0] != appt.ID {
		t.Errorf("doctor appointment list = %v", d.AppointmentIDs)
	}
	p, _ := f.repos.Patients.Get(f.patient.ID.String())
	if len(p.AppointmentIDs) != 1 || p.AppointmentIDs[0] != appt.ID {
		t.Errorf("patient appointment list = %v", p.AppointmentIDs)
	}

	// array-valued fields are written with PUT, never PATCH
	fieldPath := "/Doctors/" + f.doctor.ID.String() + "/appointmentIds.json"
	var sawPut bool
	for _, req := range f.srv.Requests() {
		if req == "PATCH "+fieldPath {
			t.Fatalf("array field written with PATCH: %s", req)
		}
		if req == "PUT "+fieldPath {
			sawPut = true
		}
	}
	if !sawPut {
		t.Error("doctor appointment list never written to the store")
	}

	if len(f.notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(f.notifier.sent))
	}
	n := f.notifier.sent[0]
	if n.action != mail.Confirmation || n.recipient != "ada@example.com" || n.doctor != "Gray" {
		t.Errorf("notification = %+v", n)
	}
}

func TestCancelNotifiesAndBlocksRepeat(t *testing.T) {
	selector := &fakeSelector{}
	f := newApptFixture(t, selector)
	selector.sel = &gemini.Selection{SelectedDoctorID: f.doctor.ID}
	ctx := context.Background()

	appt, _, err := f.svc.Create(ctx, f.patient.ID, "chest pain", time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	key := appt.ID.String()

	if err := f.svc.Cancel(ctx, key); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, _ := f.repos.Appointments.Get(key)
	if got.Status != model.StatusCanceled {
		t.Errorf("status = %q", got.Status)
	}
	last := f.notifier.sent[len(f.notifier.sent)-1]
	if last.action != mail.Cancellation {
		t.Errorf("last notification action = %v", last.action)
	}

	if err := f.svc.Cancel(ctx, key); !errors.Is(err, service.ErrAppointmentFinal) {
		t.Errorf("second cancel: err = %v, want ErrAppointmentFinal", err)
	}
	if err := f.svc.MarkAttended(ctx, key); !errors.Is(err, service.ErrAppointmentFinal) {
		t.Errorf("attend after cancel: err = %v, want ErrAppointmentFinal", err)
	}
}

func TestMarkAttendedDoesNotNotify(t *testing.T) {
	selector := &fakeSelector{}
	f := newApptFixture(t, selector)
	selector.sel = &gemini.Selection{SelectedDoctorID: f.doctor.ID}
	ctx := context.Background()

	appt, _, err := f.svc.Create(ctx, f.patient.ID, "chest pain", time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sentAfterCreate := len(f.notifier.sent)

	if err := f.svc.MarkAttended(ctx, appt.ID.String()); err != nil {
		t.Fatalf("mark attended: %v", err)
	}
	got, _ := f.repos.Appointments.Get(appt.ID.String())
	if got.Status != model.StatusAttended {
		t.Errorf("status = %q", got.Status)
	}
	if len(f.notifier.sent) != sentAfterCreate {
		t.Error("attendance sent mail")
	}
}

func TestScheduledPickerOrdering(t *testing.T) {
	selector := &fakeSelector{}
	f := newApptFixture(t, selector)
	selector.sel = &gemini.Selection{SelectedDoctorID: f.doctor.ID}
	ctx := context.Background()

	later, _, err := f.svc.Create(ctx, f.patient.ID, "follow-up", time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create later: %v", err)
	}
	earlier, _, err := f.svc.Create(ctx, f.patient.ID, "checkup", time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create earlier: %v", err)
	}

	picks := f.svc.Scheduled()
	if len(picks) != 2 {
		t.Fatalf("scheduled = %d, want 2", len(picks))
	}
	if picks[0].Appointment.ID != earlier.ID || picks[1].Appointment.ID != later.ID {
		t.Error("picker not ordered by time")
	}

	if err := f.svc.Cancel(ctx, earlier.ID.String()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	picks = f.svc.Scheduled()
	if len(picks) != 1 || picks[0].Appointment.ID != later.ID {
		t.Error("canceled appointment still offered by the picker")
	}
}
