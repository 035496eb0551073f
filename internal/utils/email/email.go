package email

import (
	"fmt"
	"net/smtp"

	"github.com/anoodleReza/application-tracker/internal/config"
	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendInterviewReminder emails the application's owner about an upcoming interview
func (s *Sender) SendInterviewReminder(r models.InterviewReminder) error {
	e := s.newReminder(r)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send interview reminder to %s: %v", r.Email, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", r.Email, e.Subject)
	return nil
}

func (s *Sender) newReminder(r models.InterviewReminder) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{r.Email}
	e.Subject = fmt.Sprintf("Upcoming %s interview with %s", r.InterviewType, r.CompanyName)
	e.Text = []byte(reminderBody(r))
	return e
}

func reminderBody(r models.InterviewReminder) string {
	body := "Hello,\n\n"
	body += fmt.Sprintf(
		"This is a reminder of your %s interview for the %s position at %s.\n"+
			"Scheduled for: %s\n",
		r.InterviewType, r.PositionTitle, r.CompanyName,
		r.InterviewDate.UTC().Format("Monday, 2006-01-02 15:04 MST"),
	)
	body += "\nGood luck!\nApplication Tracker"
	return body
}
