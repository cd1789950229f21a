package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dklimov443/carminder/config"
	"github.com/dklimov443/carminder/internal/entity"
)

// Sender delivers reminder emails over SMTP.
type Sender struct {
	cfg  *config.EmailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		cfg:  cfg,
		send: smtp.SendMail,
	}
}

func (s *Sender) Send(ctx context.Context, toEmail string, car *entity.Car, rec *entity.ServiceRecord) error {
	subject, body := Compose(car, rec)

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + toEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := s.send(addr, auth, s.cfg.From, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	return nil
}

// Compose builds the reminder subject and body from the car context and
// the expiring record.
func Compose(car *entity.Car, rec *entity.ServiceRecord) (subject, body string) {
	subject = fmt.Sprintf("%s expires on %s", rec.Type.Label(), rec.ExpiryDate.String())

	body = fmt.Sprintf(
		"Hello,\n\n"+
			"The %s for your car %s expires on %s.\n\n"+
			"Don't forget to renew it in time.\n\n"+
			"-- carminder",
		strings.ToLower(rec.Type.Label()),
		car.DisplayName(),
		rec.ExpiryDate.String(),
	)
	return subject, body
}
