package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeOffRequestRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffRequestRepository(db *database.DB) timeoff.RequestRepository {
	return &timeOffRequestRepositoryImpl{db: db}
}

const requestSelect = `
	SELECT r.id, r.employee_id, r.policy_id, r.request_type, r.start_date, r.end_date,
		   r.day_portion, r.total_days, r.reason, r.status, r.created_at, r.updated_at,
		   COALESCE(e.display_name, e.email), pol.policy_name, e.manager_id
	FROM time_off_requests r
	JOIN profiles e ON e.id = r.employee_id
	JOIN time_off_policies pol ON pol.id = r.policy_id
`

func scanRequest(row pgx.Row) (timeoff.Request, error) {
	var r timeoff.Request
	err := row.Scan(
		&r.ID,
		&r.EmployeeID,
		&r.PolicyID,
		&r.RequestType,
		&r.StartDate,
		&r.EndDate,
		&r.DayPortion,
		&r.TotalDays,
		&r.Reason,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.EmployeeName,
		&r.PolicyName,
		&r.ManagerID,
	)
	return r, err
}

func (t *timeOffRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, t.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time off requests: %w", err)
	}
	defer rows.Close()

	requests := []timeoff.Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time off request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// Create implements timeoff.RequestRepository.
func (t *timeOffRequestRepositoryImpl) Create(ctx context.Context, r timeoff.Request) (timeoff.Request, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO time_off_requests (
			employee_id, policy_id, request_type, start_date, end_date,
			day_portion, total_days, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		r.EmployeeID,
		r.PolicyID,
		r.RequestType,
		r.StartDate,
		r.EndDate,
		r.DayPortion,
		r.TotalDays,
		r.Reason,
		r.Status,
	).Scan(&id)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgForeignKeyViolation && constraint == "time_off_requests_policy_id_fkey" {
			return timeoff.Request{}, policy.ErrPolicyNotFound
		}
		return timeoff.Request{}, fmt.Errorf("failed to create time off request: %w", err)
	}

	return t.GetByID(ctx, id)
}

// GetByID implements timeoff.RequestRepository.
func (t *timeOffRequestRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	q := GetQuerier(ctx, t.db)

	r, err := scanRequest(q.QueryRow(ctx, requestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, fmt.Errorf("failed to get time off request %s: %w", id, err)
	}
	return r, nil
}

// ListByEmployee implements timeoff.RequestRepository.
func (t *timeOffRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]timeoff.Request, error) {
	return t.list(ctx, requestSelect+` WHERE r.employee_id = $1 ORDER BY r.created_at DESC`, employeeID)
}

// ListAll implements timeoff.RequestRepository.
func (t *timeOffRequestRepositoryImpl) ListAll(ctx context.Context) ([]timeoff.Request, error) {
	return t.list(ctx, requestSelect+` ORDER BY r.created_at DESC`)
}

// ListTeam implements timeoff.RequestRepository.
func (t *timeOffRequestRepositoryImpl) ListTeam(ctx context.Context, managerID string) ([]timeoff.TeamRequest, error) {
	q := GetQuerier(ctx, t.db)

	rows, err := q.Query(ctx, `
		SELECT request_id, employee_id, employee_name, policy_name, request_type, day_portion,
			   start_date, end_date, total_days, status, created_at
		FROM get_team_requests($1)
	`, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team requests: %w", err)
	}
	defer rows.Close()

	team := []timeoff.TeamRequest{}
	for rows.Next() {
		var tr timeoff.TeamRequest
		err := rows.Scan(
			&tr.RequestID,
			&tr.EmployeeID,
			&tr.EmployeeName,
			&tr.PolicyName,
			&tr.RequestType,
			&tr.DayPortion,
			&tr.StartDate,
			&tr.EndDate,
			&tr.TotalDays,
			&tr.Status,
			&tr.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team request: %w", err)
		}
		team = append(team, tr)
	}
	return team, rows.Err()
}

// UpdateStatus implements timeoff.RequestRepository.
func (t *timeOffRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status timeoff.Status) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `
		UPDATE time_off_requests
		SET status = $1,
			updated_at = CASE WHEN status = $1 THEN updated_at ELSE NOW() END
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of time off request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return timeoff.ErrRequestNotFound
	}
	return nil
}
