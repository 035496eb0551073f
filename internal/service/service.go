package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/anoodleReza/application-tracker/internal/auth"
	apperrors "github.com/anoodleReza/application-tracker/internal/errors"
	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/anoodleReza/application-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the cause of every failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store is the persistence the service needs. Every application and interview
// method is scoped to the given owner and reports repository.ErrNotFound for
// rows the owner cannot see.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	ListApplications(ctx context.Context, userID string) ([]models.Application, error)
	GetApplication(ctx context.Context, userID, id string) (*models.Application, error)
	CreateApplication(ctx context.Context, app *models.Application) error
	UpdateApplication(ctx context.Context, app *models.Application) error
	DeleteApplication(ctx context.Context, userID, id string) error

	CreateInterview(ctx context.Context, userID string, iv *models.Interview) error
	GetInterview(ctx context.Context, userID, id string) (*models.Interview, error)
	UpdateInterview(ctx context.Context, userID string, iv *models.Interview) error
	DeleteInterview(ctx context.Context, userID, id string) error
}

// Service handles business logic
type Service struct {
	store  Store
	tokens *auth.TokenService
	log    *logrus.Logger
	clock  clockwork.Clock
}

// NewService initializes a new service
func NewService(store Store, tokens *auth.TokenService, log *logrus.Logger, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{store: store, tokens: tokens, log: log, clock: clock}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareWithDummy spends the same bcrypt work as a real comparison so that
// unknown emails and wrong passwords take comparable time.
func compareWithDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.ValidationError("Email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError("internal server error", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ConflictError("Email already registered")
		}
		return nil, apperrors.InternalError("internal server error", err)
	}

	s.log.WithField("user_id", user.ID).Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed identity token
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apperrors.ValidationError("Email and password are required")
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		compareWithDummy(password)
		s.log.Debug("Login rejected: unknown email")
		return "", nil, apperrors.UnauthorizedError("Invalid credentials", ErrInvalidCredentials)
	}
	if err != nil {
		return "", nil, apperrors.InternalError("internal server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.WithField("user_id", user.ID).Debug("Login rejected: wrong password")
		return "", nil, apperrors.UnauthorizedError("Invalid credentials", ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, apperrors.InternalError("internal server error", err)
	}

	s.log.WithField("user_id", user.ID).Infof("User logged in: %s", user.Email)
	return token, user, nil
}

// validID reports whether id could name a stored row. Anything else is
// answered as not found without touching the store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Service) now() time.Time {
	return s.clock.Now()
}
