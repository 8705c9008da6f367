package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string

	// Reference ties the message to a booking in logs.
	Reference string
}

var (
	confirmedTmpl = template.Must(template.New("confirmed").Parse(
		`<p>Hi {{.FirstName}},</p>` +
			`<p>Your {{.Subject}} session on {{.Date}} from {{.SlotStart}} to {{.SlotEnd}} is booked.</p>` +
			`<p>Reference: <strong>{{.Reference}}</strong></p>`,
	))

	reviewTmpl = template.Must(template.New("review").Parse(
		`<p>Hi {{.FirstName}},</p>` +
			`<p>Your {{.Subject}} session on {{.Date}} is complete. ` +
			`We would love to hear how it went; leave a review for booking {{.Reference}}.</p>`,
	))
)

func BookingConfirmed(b *models.Booking) Message {
	return Message{
		ToEmail:   b.Email,
		ToName:    b.FirstName + " " + b.LastName,
		Subject:   fmt.Sprintf("Booking confirmed: %s on %s", b.Subject, b.Date),
		HTML:      render(confirmedTmpl, b),
		Reference: b.Reference,
	}
}

// CopyTo readdresses m to another inbox, keeping the content.
func (m Message) CopyTo(email string) Message {
	m.ToEmail = email
	m.ToName = ""
	return m
}

func ReviewInvite(b *models.Booking) Message {
	return Message{
		ToEmail:   b.Email,
		ToName:    b.FirstName + " " + b.LastName,
		Subject:   fmt.Sprintf("How was your %s session?", b.Subject),
		HTML:      render(reviewTmpl, b),
		Reference: b.Reference,
	}
}

func render(t *template.Template, b *models.Booking) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, b); err != nil {
		return ""
	}
	return buf.String()
}
