package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Sends are best-effort: callers issue
// them after the triggering write and only log failures.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to, patientName, doctorName, date, timeSlot string) error
	SendWelcome(ctx context.Context, to, name string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, patientName, doctorName, date, timeSlot string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with Dr. %s on %s at %s has been scheduled.\n\nPlease arrive 15 minutes early and bring a valid ID.\n\nDentique Dental Clinic",
		patientName, doctorName, date, timeSlot,
	)
	return s.send(ctx, to, "Appointment Confirmation", body)
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nWelcome to Dentique Dental Clinic. You can now book appointments and view your records in the patient portal.\n\nDentique Dental Clinic",
		name,
	)
	return s.send(ctx, to, "Welcome to Dentique", body)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NewNoopService returns a service that logs instead of sending. Used when
// SMTP is not configured.
func NewNoopService() Service {
	return noopService{}
}

type noopService struct{}

func (noopService) SendBookingConfirmation(_ context.Context, to, _, _, _, _ string) error {
	log.Debug().Str("to", to).Msg("email disabled, skipping booking confirmation")
	return nil
}

func (noopService) SendWelcome(_ context.Context, to, _ string) error {
	log.Debug().Str("to", to).Msg("email disabled, skipping welcome email")
	return nil
}
