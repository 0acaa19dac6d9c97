package mail

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/kantorkita/hrms-backend-go/internal/config"
)

// Service sends workflow notification emails. Delivery failures are the
// caller's to log; they never fail the request that triggered them.
type Service interface {
	SendDecisionNotice(to, requesterName, requestKind, status string, note *string) error
	SendSubmissionNotice(to, approverName, requesterName, requestKind string) error
	Enabled() bool
}

type serviceImpl struct {
	cfg config.Config
}

func NewService(cfg *config.Config) Service {
	return &serviceImpl{cfg: *cfg}
}

func (s *serviceImpl) Enabled() bool {
	return s.cfg.SMTP.Host != ""
}

func (s *serviceImpl) send(to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.SMTP.From); err != nil {
		return fmt.Errorf("set mail sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set mail recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(s.cfg.SMTP.Host,
		gomail.WithPort(s.cfg.SMTP.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.SMTP.Username),
		gomail.WithPassword(s.cfg.SMTP.Password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	return client.DialAndSend(msg)
}

func (s *serviceImpl) SendDecisionNotice(to, requesterName, requestKind, status string, note *string) error {
	subject := fmt.Sprintf("Your %s request has been %s", requestKind, status)
	body := fmt.Sprintf("Hi %s,\n\nYour %s request has been %s.\n", requesterName, requestKind, status)
	if note != nil && *note != "" {
		body += fmt.Sprintf("\nNote from the approver: %s\n", *note)
	}
	return s.send(to, subject, body)
}

func (s *serviceImpl) SendSubmissionNotice(to, approverName, requesterName, requestKind string) error {
	subject := fmt.Sprintf("%s request awaiting your approval", requesterName)
	body := fmt.Sprintf("Hi %s,\n\n%s submitted a %s request that is waiting for your decision.\n",
		approverName, requesterName, requestKind)
	return s.send(to, subject, body)
}
