package service

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/anoodleReza/application-tracker/internal/errors"
	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/anoodleReza/application-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InterviewInput is the client payload for creating or replacing an interview.
// ApplicationID is ignored on update.
type InterviewInput struct {
	ApplicationID string  `json:"applicationId"`
	InterviewDate string  `json:"interviewDate"`
	InterviewType string  `json:"interviewType"`
	Notes         *string `json:"notes"`
}

// Layouts accepted for interview dates, the second being what HTML
// datetime-local inputs submit.
var interviewDateLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

func errInterviewNotFound() *apperrors.Error {
	return apperrors.NotFoundError("Interview not found")
}

func parseInterviewDate(s string) (time.Time, bool) {
	for _, layout := range interviewDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (in InterviewInput) toInterview() (*models.Interview, error) {
	rawDate := strings.TrimSpace(in.InterviewDate)
	kind := models.InterviewType(strings.TrimSpace(in.InterviewType))
	if rawDate == "" || kind == "" {
		return nil, apperrors.ValidationError("Missing required fields")
	}
	if !kind.Valid() {
		return nil, apperrors.ValidationError("Invalid interview type").WithContext("interviewType", string(kind))
	}
	date, ok := parseInterviewDate(rawDate)
	if !ok {
		return nil, apperrors.ValidationError("Invalid interview date")
	}
	return &models.Interview{
		InterviewDate: date,
		InterviewType: kind,
		Notes:         optional(in.Notes),
	}, nil
}

// CreateInterview schedules an interview under one of the caller's applications.
func (s *Service) CreateInterview(ctx context.Context, userID string, in InterviewInput) (*models.Interview, error) {
	appID := strings.TrimSpace(in.ApplicationID)
	if appID == "" {
		return nil, apperrors.ValidationError("Missing required fields")
	}
	iv, err := in.toInterview()
	if err != nil {
		return nil, err
	}
	if !validID(appID) {
		return nil, errApplicationNotFound()
	}
	iv.ID = uuid.NewString()
	iv.ApplicationID = appID

	err = s.store.CreateInterview(ctx, userID, iv)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errApplicationNotFound()
	}
	if err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"application_id": appID,
		"interview_id":   iv.ID,
	}).Info("Interview created")
	return iv, nil
}

// GetInterview returns an interview under one of the caller's applications.
func (s *Service) GetInterview(ctx context.Context, userID, id string) (*models.Interview, error) {
	if !validID(id) {
		return nil, errInterviewNotFound()
	}
	iv, err := s.store.GetInterview(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInterviewNotFound()
	}
	if err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}
	return iv, nil
}

// UpdateInterview replaces the fields of an interview the caller owns.
func (s *Service) UpdateInterview(ctx context.Context, userID, id string, in InterviewInput) (*models.Interview, error) {
	if !validID(id) {
		return nil, errInterviewNotFound()
	}
	iv, err := in.toInterview()
	if err != nil {
		return nil, err
	}
	iv.ID = id

	err = s.store.UpdateInterview(ctx, userID, iv)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInterviewNotFound()
	}
	if err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":      userID,
		"interview_id": id,
	}).Info("Interview updated")
	return iv, nil
}

// DeleteInterview removes an interview the caller owns.
func (s *Service) DeleteInterview(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return errInterviewNotFound()
	}
	err := s.store.DeleteInterview(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return errInterviewNotFound()
	}
	if err != nil {
		return apperrors.InternalError("internal server error", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":      userID,
		"interview_id": id,
	}).Info("Interview deleted")
	return nil
}
