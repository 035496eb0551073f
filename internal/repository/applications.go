package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/lib/pq"
)

const applicationColumns = `id, user_id, company_name, position_title, status, application_date, job_url, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	app := &models.Application{}
	var jobURL, notes sql.NullString
	err := row.Scan(&app.ID, &app.UserID, &app.CompanyName, &app.PositionTitle, &app.Status,
		&app.ApplicationDate, &jobURL, &notes, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	app.JobURL = nullableString(jobURL)
	app.Notes = nullableString(notes)
	app.Interviews = []models.Interview{}
	return app, nil
}

// ListApplications returns the user's applications, newest application date
// first, each with its interviews.
func (r *Repository) ListApplications(ctx context.Context, userID string) ([]models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = $1
		ORDER BY application_date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	ids := []string{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
		ids = append(ids, app.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if len(ids) == 0 {
		return apps, nil
	}

	byApp, err := r.interviewsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if ivs, ok := byApp[apps[i].ID]; ok {
			apps[i].Interviews = ivs
		}
	}
	return apps, nil
}

// GetApplication retrieves an application owned by userID, with interviews.
func (r *Repository) GetApplication(ctx context.Context, userID, id string) (*models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = $1 AND user_id = $2`
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	byApp, err := r.interviewsFor(ctx, []string{app.ID})
	if err != nil {
		return nil, err
	}
	if ivs, ok := byApp[app.ID]; ok {
		app.Interviews = ivs
	}
	return app, nil
}

// CreateApplication inserts an application. The caller sets ID and UserID.
func (r *Repository) CreateApplication(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (id, user_id, company_name, position_title, status, application_date, job_url, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, app.ID, app.UserID, app.CompanyName, app.PositionTitle,
		app.Status, app.ApplicationDate, app.JobURL, app.Notes).
		Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	if app.Interviews == nil {
		app.Interviews = []models.Interview{}
	}
	return nil
}

// UpdateApplication replaces the mutable fields of an application owned by
// app.UserID. Ownership is checked by the UPDATE itself.
func (r *Repository) UpdateApplication(ctx context.Context, app *models.Application) error {
	query := `
		UPDATE applications
		SET company_name = $3, position_title = $4, status = $5, application_date = $6,
		    job_url = $7, notes = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, app.ID, app.UserID, app.CompanyName, app.PositionTitle,
		app.Status, app.ApplicationDate, app.JobURL, app.Notes).
		Scan(&app.CreatedAt, &app.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	byApp, err := r.interviewsFor(ctx, []string{app.ID})
	if err != nil {
		return err
	}
	app.Interviews = []models.Interview{}
	if ivs, ok := byApp[app.ID]; ok {
		app.Interviews = ivs
	}
	return nil
}

// DeleteApplication deletes an application owned by userID together with its
// interviews in one transaction. The owned row is locked before the children
// are removed.
func (r *Repository) DeleteApplication(ctx context.Context, userID, id string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var locked string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM applications WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID).
			Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock application: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM interviews WHERE application_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete interviews: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete application: %w", err)
		}
		return nil
	})
}

// interviewsFor loads interviews of the given applications ordered by date.
func (r *Repository) interviewsFor(ctx context.Context, appIDs []string) (map[string][]models.Interview, error) {
	query := `
		SELECT ` + interviewColumns + `
		FROM interviews i
		WHERE i.application_id = ANY($1::uuid[])
		ORDER BY i.interview_date ASC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(appIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load interviews: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Interview)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		out[iv.ApplicationID] = append(out[iv.ApplicationID], *iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load interviews: %w", err)
	}
	return out, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
