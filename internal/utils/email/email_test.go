package email

import (
	"io"
	"testing"
	"time"

	"github.com/anoodleReza/application-tracker/internal/config"
	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewReminder(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{SenderEmail: "noreply@tracker.test"}, log)

	r := models.InterviewReminder{
		InterviewID:   "i1",
		InterviewDate: time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC),
		InterviewType: models.InterviewTechnical,
		Email:         "a@x.com",
		CompanyName:   "Acme",
		PositionTitle: "Engineer",
	}

	e := s.newReminder(r)
	assert.Equal(t, "noreply@tracker.test", e.From)
	assert.Equal(t, []string{"a@x.com"}, e.To)
	assert.Equal(t, "Upcoming Technical interview with Acme", e.Subject)

	body := string(e.Text)
	assert.Contains(t, body, "Technical interview for the Engineer position at Acme")
	assert.Contains(t, body, "Monday, 2024-06-03 15:00 UTC")
}
