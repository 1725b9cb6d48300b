package cli

import (
	"context"
	"fmt"
	"sort"

	"hospital-manager/internal/model"
	"hospital-manager/internal/service"
)

func (a *App) adminMenu(ctx context.Context) {
	for {
		a.reload(ctx)
		fmt.Println("\n==== ADMIN MENU ====")
		fmt.Println("1) Register user (patient or doctor)")
		fmt.Println("2) List patients")
		fmt.Println("3) List doctors")
		fmt.Println("4) List users")
		fmt.Println("5) List appointments")
		fmt.Println("6) Cancel appointment")
		fmt.Println("7) Update patient")
		fmt.Println("8) Update doctor")
		fmt.Println("9) Update user")
		fmt.Println("10) Delete patient")
		fmt.Println("11) Delete doctor")
		fmt.Println("12) Email history")
		fmt.Println("13) Ask the clinic assistant")
		fmt.Println("0) Log out")

		switch a.prompt.line("> ") {
		case "1":
			a.registerUser(ctx)
		case "2":
			for _, p := range a.patients.List() {
				printPatient(p)
				fmt.Println(rule)
			}
		case "3":
			for _, d := range a.doctors.List() {
				printDoctor(d)
				fmt.Println(rule)
			}
		case "4":
			for _, u := range a.users.List() {
				printUser(u)
				fmt.Println(rule)
			}
		case "5":
			for _, ap := range a.appointments.ListAll() {
				printAppointment(ap)
				fmt.Println(rule)
			}
		case "6":
			a.cancelAppointment(ctx)
		case "7":
			a.updatePatient(ctx)
		case "8":
			a.updateDoctor(ctx)
		case "9":
			a.updateUser(ctx)
		case "10":
			a.deleteByName(ctx, "patient", a.patients.Delete)
		case "11":
			a.deleteByName(ctx, "doctor", a.doctors.Delete)
		case "12":
			a.emailHistory()
		case "13":
			a.askAssistant(ctx)
		case "0":
			return
		}
	}
}

func (a *App) personInput() service.PersonInput {
	return service.PersonInput{
		Name:           a.prompt.required("Name: "),
		Age:            a.prompt.number("Age: "),
		Address:        a.prompt.required("Address: "),
		Phone:          a.prompt.required("Phone: "),
		Email:          a.prompt.required("Email: "),
		DocumentNumber: a.prompt.required("Document number: "),
	}
}

// registerUser creates the linked patient or doctor record first, then the
// login that points at it.
func (a *App) registerUser(ctx context.Context) {
	in := service.UserInput{
		Name:     a.prompt.required("Full name: "),
		Username: a.prompt.required("Username: "),
		Password: a.prompt.required("Password (min 8 chars): "),
	}

	var linked model.Entity
	switch a.prompt.required("Role (1 = Patient, 2 = Doctor): ") {
	case "1":
		in.Role = model.RolePatient
		p, err := a.patients.Register(ctx, a.personInput())
		if err != nil {
			fmt.Println(err)
			return
		}
		printPatient(p)
		linked = p
	case "2":
		in.Role = model.RoleDoctor
		din := service.DoctorInput{
			PersonInput:    a.personInput(),
			Specialization: a.prompt.required("Specialization: "),
		}
		d, err := a.doctors.Register(ctx, din)
		if err != nil {
			fmt.Println(err)
			return
		}
		printDoctor(d)
		linked = d
	default:
		fmt.Println("select 1 or 2")
		return
	}

	u, err := a.users.Register(ctx, in, linked.EntityID())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("user registered")
	printUser(u)
}

func (a *App) cancelAppointment(ctx context.Context) {
	scheduled := a.appointments.Scheduled()
	if len(scheduled) == 0 {
		fmt.Println("no scheduled appointments")
		return
	}

	for i, k := range scheduled {
		fmt.Printf("\n[%d]", i+1)
		printAppointment(k.Appointment)
	}

	n := a.prompt.number("Select the appointment to cancel: ")
	if n < 1 || n > len(scheduled) {
		fmt.Println("no such appointment")
		return
	}
	if err := a.appointments.Cancel(ctx, scheduled[n-1].Key); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("appointment canceled, patient notified")
}

func (a *App) updatePatient(ctx context.Context) {
	name := a.prompt.required("Patient name to update: ")
	if _, err := a.patients.FindByName(name); err != nil {
		fmt.Println(err)
		return
	}
	if _, err := a.patients.Update(ctx, name, a.personInput()); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("patient updated")
}

func (a *App) updateDoctor(ctx context.Context) {
	name := a.prompt.required("Doctor name to update: ")
	if _, err := a.doctors.FindByName(name); err != nil {
		fmt.Println(err)
		return
	}
	in := service.DoctorInput{
		PersonInput:    a.personInput(),
		Specialization: a.prompt.required("Specialization: "),
	}
	if _, err := a.doctors.Update(ctx, name, in); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("doctor updated")
}

func (a *App) updateUser(ctx context.Context) {
	login := a.prompt.required("Username or name to update: ")
	existing, err := a.users.FindByLogin(login)
	if err != nil {
		fmt.Println(err)
		return
	}

	in := service.UserInput{
		Name:     a.prompt.required(fmt.Sprintf("New name (current %s): ", existing.Name)),
		Username: a.prompt.required(fmt.Sprintf("New username (current %s): ", existing.Username)),
		Password: a.prompt.required("New password: "),
		Role:     model.Role(a.prompt.required(fmt.Sprintf("Role (current %s): ", existing.Role))),
	}
	if _, err := a.users.Update(ctx, login, in); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("user updated")
}

func (a *App) deleteByName(ctx context.Context, kind string, del func(context.Context, string) error) {
	name := a.prompt.required(fmt.Sprintf("%s name to delete: ", kind))
	if err := del(ctx, name); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s %q deleted\n", kind, name)
}

func (a *App) emailHistory() {
	logs := a.cache.EmailLogs.Values()
	if len(logs) == 0 {
		fmt.Println("no emails on record")
		return
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].SentAt.Before(logs[j].SentAt) })
	for _, l := range logs {
		printEmailLog(l)
		fmt.Println(rule)
	}
}

func (a *App) askAssistant(ctx context.Context) {
	question := a.prompt.required("Question: ")

	// snapshot of the session cache, not live references
	snapshot := struct {
		Patients     []*model.Patient     `json:"patients"`
		Doctors      []*model.Doctor      `json:"doctors"`
		Appointments []*model.Appointment `json:"appointments"`
		EmailLogs    []*model.EmailLog    `json:"emailLogs"`
	}{
		Patients:     a.cache.Patients.Values(),
		Doctors:      a.cache.Doctors.Values(),
		Appointments: a.cache.Appointments.Values(),
		EmailLogs:    a.cache.EmailLogs.Values(),
	}

	answer, err := a.assistant.AskClinicQuestion(ctx, question, snapshot)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(answer)
}
