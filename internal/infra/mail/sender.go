package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

var bookingAlertTmpl = template.Must(template.New("booking_alert").Parse(
	`A new booking was closed.

Client:    {{.ClientName}}
Executive: {{.ExecutiveName}}
Site:      {{.SiteName}}
Amount:    ₹{{.AmountLakhs}}L

-- Field Sales Tracker
`))

var followUpAlertTmpl = template.Must(template.New("followup_alert").Parse(
	`Lead {{.ClientName}} has been waiting in Follow-up since {{.Since}}.

-- Field Sales Tracker
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendBookingAlert(to string, data BookingAlertData) error {
	var body bytes.Buffer
	if err := bookingAlertTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render booking alert: %w", err)
	}
	return s.send(to, "New booking: "+data.ClientName, body.String())
}

func (s *EmailSender) SendFollowUpAlert(to string, data FollowUpAlertData) error {
	var body bytes.Buffer
	if err := followUpAlertTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render follow-up alert: %w", err)
	}
	return s.send(to, "Follow-up due: "+data.ClientName, body.String())
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
