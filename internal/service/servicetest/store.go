// Package servicetest provides an in-memory store for service and handler tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/anoodleReza/application-tracker/internal/repository"
)

// Store is an in-memory implementation of service.Store with the same
// ownership semantics as the PostgreSQL repository.
type Store struct {
	mu           sync.Mutex
	users        map[string]models.User // keyed by email
	applications map[string]models.Application
	interviews   map[string]models.Interview

	// FailApplicationDelete, when set, makes DeleteApplication fail after its
	// interviews were removed, so callers can observe the rollback.
	FailApplicationDelete error
	// Err, when set, is returned by every method.
	Err error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]models.User),
		applications: make(map[string]models.Application),
		interviews:   make(map[string]models.Interview),
	}
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.CreatedAt = time.Now().UTC()
	s.users[user.Email] = *user
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *Store) ListApplications(_ context.Context, userID string) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	apps := []models.Application{}
	for _, app := range s.applications {
		if app.UserID == userID {
			app.Interviews = s.interviewsOf(app.ID)
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].ApplicationDate.Equal(apps[j].ApplicationDate.Time) {
			return apps[i].ApplicationDate.After(apps[j].ApplicationDate.Time)
		}
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (s *Store) GetApplication(_ context.Context, userID, id string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	app, ok := s.owned(userID, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	app.Interviews = s.interviewsOf(app.ID)
	return &app, nil
}

func (s *Store) CreateApplication(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	now := time.Now().UTC()
	app.CreatedAt, app.UpdatedAt = now, now
	app.Interviews = []models.Interview{}
	stored := *app
	stored.Interviews = nil
	s.applications[app.ID] = stored
	return nil
}

func (s *Store) UpdateApplication(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.owned(app.UserID, app.ID)
	if !ok {
		return repository.ErrNotFound
	}
	app.CreatedAt = existing.CreatedAt
	app.UpdatedAt = time.Now().UTC()
	stored := *app
	stored.Interviews = nil
	s.applications[app.ID] = stored
	app.Interviews = s.interviewsOf(app.ID)
	return nil
}

func (s *Store) DeleteApplication(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.owned(userID, id); !ok {
		return repository.ErrNotFound
	}

	// Stage the deletes and apply them only when every step succeeded.
	remaining := make(map[string]models.Interview, len(s.interviews))
	for ivID, iv := range s.interviews {
		if iv.ApplicationID != id {
			remaining[ivID] = iv
		}
	}
	if s.FailApplicationDelete != nil {
		return s.FailApplicationDelete
	}
	s.interviews = remaining
	delete(s.applications, id)
	return nil
}

func (s *Store) CreateInterview(_ context.Context, userID string, iv *models.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.owned(userID, iv.ApplicationID); !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	iv.CreatedAt, iv.UpdatedAt = now, now
	s.interviews[iv.ID] = *iv
	return nil
}

func (s *Store) GetInterview(_ context.Context, userID, id string) (*models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	iv, ok := s.ownedInterview(userID, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &iv, nil
}

func (s *Store) UpdateInterview(_ context.Context, userID string, iv *models.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.ownedInterview(userID, iv.ID)
	if !ok {
		return repository.ErrNotFound
	}
	iv.ApplicationID = existing.ApplicationID
	iv.CreatedAt = existing.CreatedAt
	iv.UpdatedAt = time.Now().UTC()
	s.interviews[iv.ID] = *iv
	return nil
}

func (s *Store) DeleteInterview(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.ownedInterview(userID, id); !ok {
		return repository.ErrNotFound
	}
	delete(s.interviews, id)
	return nil
}

func (s *Store) ListUpcomingInterviews(_ context.Context, from, to time.Time) ([]models.InterviewReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	emails := make(map[string]string, len(s.users))
	for _, u := range s.users {
		emails[u.ID] = u.Email
	}
	var out []models.InterviewReminder
	for _, iv := range s.interviews {
		if iv.InterviewDate.Before(from) || !iv.InterviewDate.Before(to) {
			continue
		}
		app := s.applications[iv.ApplicationID]
		out = append(out, models.InterviewReminder{
			InterviewID:   iv.ID,
			InterviewDate: iv.InterviewDate,
			InterviewType: iv.InterviewType,
			Email:         emails[app.UserID],
			CompanyName:   app.CompanyName,
			PositionTitle: app.PositionTitle,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InterviewDate.Before(out[j].InterviewDate) })
	return out, nil
}

// InterviewCount returns how many interviews reference the application.
func (s *Store) InterviewCount(applicationID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.interviewsOf(applicationID))
}

func (s *Store) owned(userID, id string) (models.Application, bool) {
	app, ok := s.applications[id]
	if !ok || app.UserID != userID {
		return models.Application{}, false
	}
	return app, true
}

func (s *Store) ownedInterview(userID, id string) (models.Interview, bool) {
	iv, ok := s.interviews[id]
	if !ok {
		return models.Interview{}, false
	}
	if _, ok := s.owned(userID, iv.ApplicationID); !ok {
		return models.Interview{}, false
	}
	return iv, true
}

func (s *Store) interviewsOf(applicationID string) []models.Interview {
	out := []models.Interview{}
	for _, iv := range s.interviews {
		if iv.ApplicationID == applicationID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InterviewDate.Before(out[j].InterviewDate) })
	return out
}
