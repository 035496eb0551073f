package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	apperrors "github.com/anoodleReza/application-tracker/internal/errors"
	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/anoodleReza/application-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ApplicationInput is the client payload for creating or replacing an application.
type ApplicationInput struct {
	CompanyName     string  `json:"companyName"`
	PositionTitle   string  `json:"positionTitle"`
	Status          string  `json:"status"`
	ApplicationDate string  `json:"applicationDate"`
	JobURL          *string `json:"jobUrl"`
	Notes           *string `json:"notes"`
}

func errApplicationNotFound() *apperrors.Error {
	return apperrors.NotFoundError("Application not found")
}

// toApplication validates the input and builds the mutable part of an application.
func (in ApplicationInput) toApplication() (*models.Application, error) {
	company := strings.TrimSpace(in.CompanyName)
	position := strings.TrimSpace(in.PositionTitle)
	status := models.ApplicationStatus(strings.TrimSpace(in.Status))
	rawDate := strings.TrimSpace(in.ApplicationDate)

	if company == "" || position == "" || status == "" || rawDate == "" {
		return nil, apperrors.ValidationError("Missing required fields")
	}
	if !status.Valid() {
		return nil, apperrors.ValidationError("Invalid status").WithContext("status", string(status))
	}
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return nil, apperrors.ValidationError("Invalid application date")
	}

	jobURL := optional(in.JobURL)
	if jobURL != nil {
		u, err := url.Parse(*jobURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, apperrors.ValidationError("Invalid job URL")
		}
	}

	return &models.Application{
		CompanyName:     company,
		PositionTitle:   position,
		Status:          status,
		ApplicationDate: date,
		JobURL:          jobURL,
		Notes:           optional(in.Notes),
	}, nil
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ListApplications returns the caller's applications.
func (s *Service) ListApplications(ctx context.Context, userID string) ([]models.Application, error) {
	apps, err := s.store.ListApplications(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}
	return apps, nil
}

// GetApplication returns one of the caller's applications.
func (s *Service) GetApplication(ctx context.Context, userID, id string) (*models.Application, error) {
	if !validID(id) {
		return nil, errApplicationNotFound()
	}
	app, err := s.store.GetApplication(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errApplicationNotFound()
	}
	if err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}
	return app, nil
}

// CreateApplication records a new application owned by the caller.
func (s *Service) CreateApplication(ctx context.Context, userID string, in ApplicationInput) (*models.Application, error) {
	app, err := in.toApplication()
	if err != nil {
		return nil, err
	}
	app.ID = uuid.NewString()
	app.UserID = userID

	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"application_id": app.ID,
	}).Info("Application created")
	return app, nil
}

// UpdateApplication replaces the fields of one of the caller's applications.
func (s *Service) UpdateApplication(ctx context.Context, userID, id string, in ApplicationInput) (*models.Application, error) {
	if !validID(id) {
		return nil, errApplicationNotFound()
	}
	app, err := in.toApplication()
	if err != nil {
		return nil, err
	}
	app.ID = id
	app.UserID = userID

	err = s.store.UpdateApplication(ctx, app)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errApplicationNotFound()
	}
	if err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"application_id": app.ID,
	}).Info("Application updated")
	return app, nil
}

// DeleteApplication removes one of the caller's applications and its interviews.
func (s *Service) DeleteApplication(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return errApplicationNotFound()
	}
	err := s.store.DeleteApplication(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return errApplicationNotFound()
	}
	if err != nil {
		return apperrors.InternalError("internal server error", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"application_id": id,
	}).Info("Application deleted")
	return nil
}
