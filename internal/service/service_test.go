package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/anoodleReza/application-tracker/internal/auth"
	apperrors "github.com/anoodleReza/application-tracker/internal/errors"
	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/anoodleReza/application-tracker/internal/service/servicetest"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	svc    *Service
	store  *servicetest.Store
	tokens *auth.TokenService
	clock  *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	tokens, err := auth.NewTokenService("test-secret", clock)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := servicetest.NewStore()
	return &testEnv{
		svc:    NewService(store, tokens, log, clock),
		store:  store,
		tokens: tokens,
		clock:  clock,
	}
}

func (e *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := e.svc.Register(context.Background(), email, "secret")
	require.NoError(t, err)
	return user
}

func acmeInput() ApplicationInput {
	return ApplicationInput{
		CompanyName:     "Acme",
		PositionTitle:   "Engineer",
		Status:          "Applied",
		ApplicationDate: "2024-01-01",
	}
}

func strPtr(s string) *string { return &s }

func assertType(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, want), "expected %s, got %v", want, err)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.svc.Register(ctx, "  A@X.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "secret", user.PasswordHash)

	token, loggedIn, err := env.svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := env.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Register(context.Background(), "", "secret")
	assertType(t, err, apperrors.TypeValidation)

	_, err = env.svc.Register(context.Background(), "a@x.com", "")
	assertType(t, err, apperrors.TypeValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com")

	_, err := env.svc.Register(context.Background(), "A@x.com", "other")
	assertType(t, err, apperrors.TypeConflict)
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com")
	ctx := context.Background()

	_, _, wrongPassword := env.svc.Login(ctx, "a@x.com", "nope")
	_, _, unknownEmail := env.svc.Login(ctx, "ghost@x.com", "secret")

	for _, err := range []error{wrongPassword, unknownEmail} {
		assertType(t, err, apperrors.TypeUnauthorized)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	assert.Equal(t,
		apperrors.AsStructuredError(wrongPassword).ToResponse(),
		apperrors.AsStructuredError(unknownEmail).ToResponse())
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.svc.Login(context.Background(), "a@x.com", "")
	assertType(t, err, apperrors.TypeValidation)
}

func TestCreateApplication_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.com")
	ctx := context.Background()

	in := acmeInput()
	in.JobURL = strPtr("https://acme.example/jobs/1")
	in.Notes = strPtr("referral from Bob")

	created, err := env.svc.CreateApplication(ctx, user.ID, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, user.ID, created.UserID)

	got, err := env.svc.GetApplication(ctx, user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Engineer", got.PositionTitle)
	assert.Equal(t, models.StatusApplied, got.Status)
	assert.Equal(t, "2024-01-01", got.ApplicationDate.String())
	assert.Equal(t, "https://acme.example/jobs/1", *got.JobURL)
	assert.Equal(t, "referral from Bob", *got.Notes)
	assert.Empty(t, got.Interviews)
}

func TestCreateApplication_Validation(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.com")

	tests := []struct {
		name   string
		mutate func(*ApplicationInput)
	}{
		{"missing company", func(in *ApplicationInput) { in.CompanyName = "  " }},
		{"missing position", func(in *ApplicationInput) { in.PositionTitle = "" }},
		{"missing status", func(in *ApplicationInput) { in.Status = "" }},
		{"missing date", func(in *ApplicationInput) { in.ApplicationDate = "" }},
		{"unknown status", func(in *ApplicationInput) { in.Status = "Ghosted" }},
		{"bad date", func(in *ApplicationInput) { in.ApplicationDate = "yesterday" }},
		{"bad url", func(in *ApplicationInput) { in.JobURL = strPtr("ftp://acme") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := acmeInput()
			tt.mutate(&in)
			_, err := env.svc.CreateApplication(context.Background(), user.ID, in)
			assertType(t, err, apperrors.TypeValidation)
		})
	}

	apps, err := env.svc.ListApplications(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, apps, "validation failures must not write")
}

func TestApplications_OwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "a@x.com")
	bob := env.register(t, "b@x.com")
	ctx := context.Background()

	app, err := env.svc.CreateApplication(ctx, alice.ID, acmeInput())
	require.NoError(t, err)

	_, err = env.svc.GetApplication(ctx, bob.ID, app.ID)
	assertType(t, err, apperrors.TypeNotFound)

	_, err = env.svc.UpdateApplication(ctx, bob.ID, app.ID, acmeInput())
	assertType(t, err, apperrors.TypeNotFound)

	err = env.svc.DeleteApplication(ctx, bob.ID, app.ID)
	assertType(t, err, apperrors.TypeNotFound)

	bobsApps, err := env.svc.ListApplications(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobsApps)

	still, err := env.svc.GetApplication(ctx, alice.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", still.CompanyName)
}

func TestNotFoundMatchesForeignAndMissing(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "a@x.com")
	bob := env.register(t, "b@x.com")
	ctx := context.Background()

	app, err := env.svc.CreateApplication(ctx, alice.ID, acmeInput())
	require.NoError(t, err)

	_, foreign := env.svc.GetApplication(ctx, bob.ID, app.ID)
	_, missing := env.svc.GetApplication(ctx, bob.ID, uuid.NewString())
	_, malformed := env.svc.GetApplication(ctx, bob.ID, "not-a-uuid")

	want := apperrors.AsStructuredError(missing).ToResponse()
	assert.Equal(t, want, apperrors.AsStructuredError(foreign).ToResponse())
	assert.Equal(t, want, apperrors.AsStructuredError(malformed).ToResponse())
}

func TestUpdateApplication(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.com")
	ctx := context.Background()

	app, err := env.svc.CreateApplication(ctx, user.ID, acmeInput())
	require.NoError(t, err)

	in := acmeInput()
	in.Status = "Offer"
	in.Notes = strPtr("signed")
	updated, err := env.svc.UpdateApplication(ctx, user.ID, app.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffer, updated.Status)

	got, err := env.svc.GetApplication(ctx, user.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffer, got.Status)
	assert.Equal(t, "signed", *got.Notes)

	in.Status = ""
	_, err = env.svc.UpdateApplication(ctx, user.ID, app.ID, in)
	assertType(t, err, apperrors.TypeValidation)
}

func TestDeleteApplication_Idempotence(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.com")
	ctx := context.Background()

	app, err := env.svc.CreateApplication(ctx, user.ID, acmeInput())
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteApplication(ctx, user.ID, app.ID))

	err = env.svc.DeleteApplication(ctx, user.ID, app.ID)
	assertType(t, err, apperrors.TypeNotFound)
	err = env.svc.DeleteApplication(ctx, user.ID, app.ID)
	assertType(t, err, apperrors.TypeNotFound)

	err = env.svc.DeleteApplication(ctx, user.ID, uuid.NewString())
	assertType(t, err, apperrors.TypeNotFound)
}

func TestDeleteApplication_Cascades(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		env := newTestEnv(t)
		user := env.register(t, "a@x.com")
		ctx := context.Background()

		app, err := env.svc.CreateApplication(ctx, user.ID, acmeInput())
		require.NoError(t, err)
		other, err := env.svc.CreateApplication(ctx, user.ID, acmeInput())
		require.NoError(t, err)

		for i := 0; i < n; i++ {
			_, err := env.svc.CreateInterview(ctx, user.ID, InterviewInput{
				ApplicationID: app.ID,
				InterviewDate: "2024-06-10T10:00:00Z",
				InterviewType: "Phone",
			})
			require.NoError(t, err)
		}
		_, err = env.svc.CreateInterview(ctx, user.ID, InterviewInput{
			ApplicationID: other.ID,
			InterviewDate: "2024-06-11T10:00:00Z",
			InterviewType: "Video",
		})
		require.NoError(t, err)
		require.Equal(t, n, env.store.InterviewCount(app.ID))

		require.NoError(t, env.svc.DeleteApplication(ctx, user.ID, app.ID))
		assert.Equal(t, 0, env.store.InterviewCount(app.ID), "n=%d", n)
		assert.Equal(t, 1, env.store.InterviewCount(other.ID), "n=%d", n)
	}
}

func TestDeleteApplication_FailureLeavesEverything(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.com")
	ctx := context.Background()

	app, err := env.svc.CreateApplication(ctx, user.ID, acmeInput())
	require.NoError(t, err)
	_, err = env.svc.CreateInterview(ctx, user.ID, InterviewInput{
		ApplicationID: app.ID,
		InterviewDate: "2024-06-10T10:00:00Z",
		InterviewType: "Technical",
	})
	require.NoError(t, err)

	env.store.FailApplicationDelete = errors.New("connection reset")
	err = env.svc.DeleteApplication(ctx, user.ID, app.ID)
	assertType(t, err, apperrors.TypeInternal)

	env.store.FailApplicationDelete = nil
	got, err := env.svc.GetApplication(ctx, user.ID, app.ID)
	require.NoError(t, err)
	assert.Len(t, got.Interviews, 1)
}

func TestStoreFailureIsInternal(t *testing.T) {
	env := newTestEnv(t)
	env.store.Err = errors.New("store unavailable")

	_, err := env.svc.ListApplications(context.Background(), uuid.NewString())
	assertType(t, err, apperrors.TypeInternal)
	assert.Equal(t, "internal server error", apperrors.AsStructuredError(err).ToResponse().Error)
}
