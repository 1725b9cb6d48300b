package cli

import (
	"fmt"
	"strings"

	"hospital-manager/internal/model"
)

const rule = "----------------------------------------"

func printPatient(p *model.Patient) {
	fmt.Println("\nPATIENT INFO")
	fmt.Printf("ID      : %s\n", p.ID)
	fmt.Printf("Name    : %s\n", p.Name)
	fmt.Printf("Age     : %d\n", p.Age)
	fmt.Printf("Address : %s\n", p.Address)
	fmt.Printf("Phone   : %s\n", p.Phone)
	fmt.Printf("Email   : %s\n", p.Email)
	fmt.Printf("Document: %s\n", p.DocumentNumber)
}

func printDoctor(d *model.Doctor) {
	fmt.Println("\nDOCTOR INFO")
	fmt.Printf("ID            : %s\n", d.ID)
	fmt.Printf("Name          : %s\n", d.Name)
	fmt.Printf("Age           : %d\n", d.Age)
	fmt.Printf("Address       : %s\n", d.Address)
	fmt.Printf("Phone         : %s\n", d.Phone)
	fmt.Printf("Email         : %s\n", d.Email)
	fmt.Printf("Document      : %s\n", d.DocumentNumber)
	fmt.Printf("Specialization: %s\n", d.Specialization)
	if len(d.AppointmentIDs) == 0 {
		fmt.Println("Appointments  : none")
		return
	}
	ids := make([]string, len(d.AppointmentIDs))
	for i, id := range d.AppointmentIDs {
		ids[i] = id.String()
	}
	fmt.Printf("Appointments  : %s\n", strings.Join(ids, ", "))
}

func printAppointment(a *model.Appointment) {
	fmt.Println("\nAPPOINTMENT INFO")
	fmt.Printf("ID         : %s\n", a.ID)
	fmt.Printf("Patient ID : %s\n", a.PatientID)
	fmt.Printf("Doctor ID  : %s\n", a.DoctorID)
	fmt.Printf("Date       : %s\n", a.Date.Format(dateLayout))
	fmt.Printf("Status     : %s\n", a.Status)
}

func printUser(u *model.User) {
	fmt.Printf("\nUser     : %s\n", u.Name)
	fmt.Printf("Username : %s\n", u.Username)
	fmt.Printf("Role     : %s\n", u.Role)
	fmt.Printf("Linked ID: %s\n", u.LinkedID)
}

func printEmailLog(l *model.EmailLog) {
	fmt.Printf("Recipient : %s\n", l.Recipient)
	fmt.Printf("Sent Date : %s\n", l.SentAt.Format(dateLayout))
	fmt.Printf("Status    : %s\n", l.Status)
}
