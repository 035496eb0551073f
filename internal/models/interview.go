package models

import "time"

// InterviewType is the format of an interview.
type InterviewType string

const (
	InterviewPhone     InterviewType = "Phone"
	InterviewVideo     InterviewType = "Video"
	InterviewInPerson  InterviewType = "In-person"
	InterviewTechnical InterviewType = "Technical"
)

// Valid reports whether t is a known interview type.
func (t InterviewType) Valid() bool {
	switch t {
	case InterviewPhone, InterviewVideo, InterviewInPerson, InterviewTechnical:
		return true
	}
	return false
}

// Interview belongs to an application and, through it, to the application's owner
type Interview struct {
	ID            string        `json:"id"`
	ApplicationID string        `json:"applicationId"`
	InterviewDate time.Time     `json:"interviewDate"`
	InterviewType InterviewType `json:"interviewType"`
	Notes         *string       `json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// InterviewReminder is an upcoming interview joined with what a reminder email needs
type InterviewReminder struct {
	InterviewID   string
	InterviewDate time.Time
	InterviewType InterviewType
	Email         string
	CompanyName   string
	PositionTitle string
}
