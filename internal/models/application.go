package models

import "time"

// ApplicationStatus is the stage an application has reached.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusInterview   ApplicationStatus = "Interview"
	StatusAssessment  ApplicationStatus = "Assessment"
	StatusProgramming ApplicationStatus = "Programming"
	StatusOffer       ApplicationStatus = "Offer"
	StatusRejected    ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInterview,
	StatusAssessment,
	StatusProgramming,
	StatusOffer,
	StatusRejected,
}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application represents a job application owned by a single user
type Application struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	CompanyName     string            `json:"companyName"`
	PositionTitle   string            `json:"positionTitle"`
	Status          ApplicationStatus `json:"status"`
	ApplicationDate Date              `json:"applicationDate"`
	JobURL          *string           `json:"jobUrl"`
	Notes           *string           `json:"notes"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	Interviews      []Interview       `json:"interviews"`
}
