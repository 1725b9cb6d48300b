package cli

import (
	"context"
	"errors"
	"fmt"

	"hospital-manager/internal/model"
	"hospital-manager/internal/service"
)

func (a *App) patientMenu(ctx context.Context, u *model.User) {
	for {
		a.reload(ctx)
		fmt.Println("\n==== PATIENT MENU ====")
		fmt.Println("1) Book an appointment")
		fmt.Println("2) My appointments")
		fmt.Println("3) My profile")
		fmt.Println("0) Log out")

		switch a.prompt.line("> ") {
		case "1":
			a.bookAppointment(ctx, u)
		case "2":
			appts := a.appointments.ListByPatient(u.LinkedID)
			if len(appts) == 0 {
				fmt.Println("no appointments found")
				break
			}
			for _, ap := range appts {
				printAppointment(ap)
				fmt.Println(rule)
			}
		case "3":
			p, err := a.patients.FindByID(u.LinkedID)
			if err != nil {
				fmt.Println(err)
				break
			}
			printPatient(p)
		case "0":
			return
		}
	}
}

func (a *App) bookAppointment(ctx context.Context, u *model.User) {
	symptoms := a.prompt.required("Describe your health issue: ")
	at := a.prompt.date("Desired appointment date and time")

	appt, sel, err := a.appointments.Create(ctx, u.LinkedID, symptoms, at)
	if err != nil {
		var slot *service.SlotTakenError
		switch {
		case errors.Is(err, service.ErrNoDoctorAssigned):
			fmt.Println("no doctor could be assigned")
		case errors.As(err, &slot):
			fmt.Println(slot.Error())
		default:
			fmt.Println(err)
		}
		return
	}

	fmt.Printf("Assigned doctor: %s\n", sel.Reason)
	fmt.Println("appointment created and confirmation email sent")
	printAppointment(appt)
}

func (a *App) doctorMenu(ctx context.Context, u *model.User) {
	for {
		a.reload(ctx)
		fmt.Println("\n==== DOCTOR MENU ====")
		fmt.Println("1) My appointments")
		fmt.Println("2) Mark appointment attended")
		fmt.Println("3) My profile")
		fmt.Println("0) Log out")

		switch a.prompt.line("> ") {
		case "1":
			appts := a.appointments.ListByDoctor(u.LinkedID)
			if len(appts) == 0 {
				fmt.Println("no appointments found")
				break
			}
			for _, ap := range appts {
				printAppointment(ap)
				fmt.Println(rule)
			}
		case "2":
			a.markAttended(ctx, u)
		case "3":
			d, err := a.doctors.FindByID(u.LinkedID)
			if err != nil {
				fmt.Println(err)
				break
			}
			printDoctor(d)
		case "0":
			return
		}
	}
}

func (a *App) markAttended(ctx context.Context, u *model.User) {
	var mine []service.Keyed
	for _, k := range a.appointments.Scheduled() {
		if k.Appointment.DoctorID == u.LinkedID {
			mine = append(mine, k)
		}
	}
	if len(mine) == 0 {
		fmt.Println("no scheduled appointments")
		return
	}

	for i, k := range mine {
		fmt.Printf("\n[%d]", i+1)
		printAppointment(k.Appointment)
	}

	n := a.prompt.number("Select the appointment attended: ")
	if n < 1 || n > len(mine) {
		fmt.Println("no such appointment")
		return
	}
	if err := a.appointments.MarkAttended(ctx, mine[n-1].Key); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("appointment marked attended")
}
