package mail

import (
	"html/template"
	"strings"
	"time"
)

type bodyData struct {
	DoctorName string
	Date       string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html>
  <body style="font-family: Arial, sans-serif; background-color: #f4f4f9; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #fff; padding: 20px; border-radius: 8px;">
      <h2 style="color: #0044cc;">Medical Appointment Confirmation</h2>
      <p>Dear patient,</p>
      <p>Your medical appointment with Dr. {{.DoctorName}} has been confirmed for <strong>{{.Date}}</strong>.</p>
      <p>Please arrive 15 minutes before the scheduled time. If you are unable to attend, please contact us as soon as possible to reschedule.</p>
      <p>Thank you for choosing San Vicente Hospital.</p>
      <p style="font-size: 12px; text-align: center; color: #777;">This is an automated message. Do not reply to this email.</p>
    </div>
  </body>
</html>`))

var cancellationTmpl = template.Must(template.New("cancellation").Parse(`<html>
  <body style="font-family: Arial, sans-serif; background-color: #f4f4f9; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #fff; padding: 20px; border-radius: 8px;">
      <h2 style="color: #cc0000;">Medical Appointment Cancellation</h2>
      <p>Dear patient,</p>
      <p>We regret to inform you that your medical appointment with Dr. {{.DoctorName}}, scheduled for <strong>{{.Date}}</strong>, has been cancelled.</p>
      <p>If you wish to reschedule, please contact us.</p>
      <p>Thank you for your understanding.</p>
      <p style="font-size: 12px; text-align: center; color: #777;">This is an automated message. Do not reply to this email.</p>
    </div>
  </body>
</html>`))

func renderBody(action Action, doctorName string, at time.Time) (string, error) {
	tmpl := confirmationTmpl
	if action == Cancellation {
		tmpl = cancellationTmpl
	}

	var b strings.Builder
	err := tmpl.Execute(&b, bodyData{
		DoctorName: doctorName,
		Date:       at.Format("Monday, 02 January 2006 15:04"),
	})
	return b.String(), err
}
