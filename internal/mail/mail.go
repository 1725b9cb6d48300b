// Package mail sends appointment notifications. Delivery is best-effort:
// the outcome is recorded as an EmailLog, never surfaced as a failure of the
// caller's operation.
package mail

import (
	"context"
	"log"
	"time"

	"gopkg.in/gomail.v2"

	"hospital-manager/internal/model"
)

type Action int

const (
	Confirmation Action = iota
	Cancellation
)

// Sender delivers one message. The SMTP implementation is swapped out in
// tests.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

// LogStore is satisfied by the EmailLog repository.
type LogStore interface {
	Create(ctx context.Context, l *model.EmailLog) (string, error)
}

type Mailer struct {
	sender Sender
	logs   LogStore
}

func NewMailer(sender Sender, logs LogStore) *Mailer {
	return &Mailer{sender: sender, logs: logs}
}

// SendAppointmentEmail notifies the patient and records the outcome. Send
// and log failures are logged and swallowed: the appointment flow already
// succeeded by the time this runs.
func (m *Mailer) SendAppointmentEmail(ctx context.Context, appt *model.Appointment, recipient string, doctor *model.Doctor, action Action) {
	subject := "Medical Appointment Confirmation"
	if action == Cancellation {
		subject = "Medical Appointment Cancellation"
	}

	entry := &model.EmailLog{
		AppointmentID: appt.ID,
		Recipient:     recipient,
		Status:        model.EmailNotSent,
	}

	body, err := renderBody(action, doctor.Name, appt.Date)
	if err != nil {
		log.Printf("mail: render body: %v", err)
	} else if err := m.sender.Send(recipient, subject, body); err != nil {
		log.Printf("mail: send to %s: %v", recipient, err)
	} else {
		entry.Status = model.EmailSent
	}

	entry.SentAt = time.Now()
	if _, err := m.logs.Create(ctx, entry); err != nil {
		log.Printf("mail: record log: %v", err)
	}
}
