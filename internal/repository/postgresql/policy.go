package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

const policyColumns = `id, policy_name, description, days_per_year, created_at, updated_at`

func scanPolicy(row pgx.Row) (policy.Policy, error) {
	var p policy.Policy
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.DaysPerYear, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_off_policies (policy_name, description, days_per_year)
		VALUES ($1, $2, $3)
		RETURNING ` + policyColumns

	created, err := scanPolicy(q.QueryRow(ctx, query, p.Name, p.Description, p.DaysPerYear))
	if err != nil {
		return policy.Policy{}, fmt.Errorf("failed to create policy: %w", err)
	}
	return created, nil
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepositoryImpl) GetByID(ctx context.Context, id string) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPolicy(q.QueryRow(ctx, `SELECT `+policyColumns+` FROM time_off_policies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Policy{}, policy.ErrPolicyNotFound
		}
		return policy.Policy{}, fmt.Errorf("failed to get policy %s: %w", id, err)
	}
	return p, nil
}

// List implements policy.PolicyRepository.
func (r *policyRepositoryImpl) List(ctx context.Context) ([]policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+policyColumns+` FROM time_off_policies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	policies := []policy.Policy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// Update implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Update(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_policies
		SET policy_name = $1, description = $2, days_per_year = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + policyColumns

	updated, err := scanPolicy(q.QueryRow(ctx, query, p.Name, p.Description, p.DaysPerYear, p.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Policy{}, policy.ErrPolicyNotFound
		}
		return policy.Policy{}, fmt.Errorf("failed to update policy %s: %w", p.ID, err)
	}
	return updated, nil
}
