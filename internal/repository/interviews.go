package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anoodleReza/application-tracker/internal/models"
)

const interviewColumns = `i.id, i.application_id, i.interview_date, i.interview_type, i.notes, i.created_at, i.updated_at`

func scanInterview(row rowScanner) (*models.Interview, error) {
	iv := &models.Interview{}
	var notes sql.NullString
	err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.InterviewDate, &iv.InterviewType, &notes, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	iv.Notes = nullableString(notes)
	return iv, nil
}

// CreateInterview inserts an interview only if its parent application is
// owned by userID. The ownership check and the insert are one statement.
func (r *Repository) CreateInterview(ctx context.Context, userID string, iv *models.Interview) error {
	query := `
		INSERT INTO interviews (id, application_id, interview_date, interview_type, notes, created_at, updated_at)
		SELECT $1::uuid, a.id, $3::timestamptz, $4::text, $5::text, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		FROM applications a
		WHERE a.id = $2 AND a.user_id = $6
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, iv.ID, iv.ApplicationID, iv.InterviewDate, iv.InterviewType, iv.Notes, userID).
		Scan(&iv.CreatedAt, &iv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// GetInterview retrieves an interview whose parent application is owned by userID.
func (r *Repository) GetInterview(ctx context.Context, userID, id string) (*models.Interview, error) {
	query := `
		SELECT ` + interviewColumns + `
		FROM interviews i
		JOIN applications a ON a.id = i.application_id
		WHERE i.id = $1 AND a.user_id = $2`
	iv, err := scanInterview(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return iv, nil
}

// UpdateInterview replaces the mutable fields of an interview reachable
// through an application owned by userID.
func (r *Repository) UpdateInterview(ctx context.Context, userID string, iv *models.Interview) error {
	query := `
		UPDATE interviews i
		SET interview_date = $3, interview_type = $4, notes = $5, updated_at = CURRENT_TIMESTAMP
		FROM applications a
		WHERE i.id = $1 AND a.id = i.application_id AND a.user_id = $2
		RETURNING i.application_id, i.created_at, i.updated_at`
	err := r.db.QueryRowContext(ctx, query, iv.ID, userID, iv.InterviewDate, iv.InterviewType, iv.Notes).
		Scan(&iv.ApplicationID, &iv.CreatedAt, &iv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}
	return nil
}

// DeleteInterview deletes an interview reachable through an application owned by userID.
func (r *Repository) DeleteInterview(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM interviews i
		USING applications a
		WHERE i.id = $1 AND a.id = i.application_id AND a.user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUpcomingInterviews returns interviews scheduled in [from, to) with the
// owner's email and the application it belongs to.
func (r *Repository) ListUpcomingInterviews(ctx context.Context, from, to time.Time) ([]models.InterviewReminder, error) {
	query := `
		SELECT i.id, i.interview_date, i.interview_type, u.email, a.company_name, a.position_title
		FROM interviews i
		JOIN applications a ON a.id = i.application_id
		JOIN users u ON u.id = a.user_id
		WHERE i.interview_date >= $1 AND i.interview_date < $2
		ORDER BY i.interview_date ASC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}
	defer rows.Close()

	var out []models.InterviewReminder
	for rows.Next() {
		var rem models.InterviewReminder
		if err := rows.Scan(&rem.InterviewID, &rem.InterviewDate, &rem.InterviewType, &rem.Email,
			&rem.CompanyName, &rem.PositionTitle); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming interview: %w", err)
		}
		out = append(out, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}
	return out, nil
}
