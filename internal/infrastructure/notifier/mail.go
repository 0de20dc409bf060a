package notifier

import (
	"github.com/LavaJover/cruise-commission-service/internal/config"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(subject, body string) error
}

// GomailSender mails the configured admin address over SMTP.
type GomailSender struct {
	cfg config.MailService
}

func NewGomailSender(cfg config.MailService) *GomailSender {
	return &GomailSender{cfg: cfg}
}

func (s *GomailSender) Send(subject, body string) error {
	from := s.cfg.From
	if from == "" {
		from = s.cfg.SMTPUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", s.cfg.AdminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	return d.DialAndSend(m)
}
