package notifications

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// SMTPServiceImpl implements domain.NotificationService over SMTP
type SMTPServiceImpl struct {
	host string
	port int
	from string
	auth smtp.Auth
	log  *zap.Logger
}

// NewSMTPService creates a new SMTP notification service. When no
// host is configured the service logs the message instead of sending,
// so local development works without a mail server.
func NewSMTPService(host string, port int, username, password, from string, log *zap.Logger) domain.NotificationService {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPServiceImpl{
		host: host,
		port: port,
		from: from,
		auth: auth,
		log:  log,
	}
}

// SendVerification implements domain.NotificationService
func (s *SMTPServiceImpl) SendVerification(email, code string) error {
	subject := "Verify your KnowMate account"
	body := fmt.Sprintf("Your verification code is: %s. It expires in 10 minutes.", code)
	return s.send(email, subject, body)
}

// SendPasswordReset implements domain.NotificationService
func (s *SMTPServiceImpl) SendPasswordReset(email, code string) error {
	subject := "Reset your KnowMate password"
	body := fmt.Sprintf("Your password reset code is: %s. It expires in 10 minutes.", code)
	return s.send(email, subject, body)
}

func (s *SMTPServiceImpl) send(to, subject, body string) error {
	if s.host == "" {
		s.log.Info("mock email", zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
		return nil
	}

	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, s.auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}
