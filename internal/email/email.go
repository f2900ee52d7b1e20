package email

import (
	"context"
	"fmt"
	"strings"

	"flightbook/internal/kafka"

	"github.com/rs/zerolog"
)

type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log.With().Str("component", "email").Logger()}
}

func (s *Sender) Send(ctx context.Context, event kafka.NotificationEvent) error {
	subject, body, err := Render(event)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("to", event.Email).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("email sent")
	return nil
}

// Render builds the message for a notification event.
func Render(event kafka.NotificationEvent) (subject, body string, err error) {
	switch event.Type {
	case kafka.EventBookingConfirmed:
		subject = "Your Flight Booking Confirmation"
		body = fmt.Sprintf(`Dear %s,

Your flight booking has been confirmed.

Booking Details:
Flight Number: %s
Departure Airport: %s
Arrival Airport: %s
Departure Time: %s
Seats Reserved: %s

Thank you for booking with us.

Best regards,
The AirBooking Team
`, event.Username, event.FlightNumber, event.DepartureAirport, event.ArrivalAirport, event.DepartureTime, strings.Join(event.Seats, ", "))
		return subject, body, nil

	case kafka.EventAccountApproved:
		subject = "Your AirBooking Account Has Been Approved!"
		body = fmt.Sprintf(`Dear %s,

Your account on AirBooking has been approved. You can now log in and start booking flights!

Best regards,
The AirBooking Team
`, event.Username)
		return subject, body, nil
	}

	return "", "", fmt.Errorf("unknown notification type %q", event.Type)
}
