package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) user.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const profileSelect = `
	SELECT p.id, p.display_name, p.email, p.password_hash, p.oauth_provider, p.oauth_provider_id,
		   p.manager_id, p.created_at, p.updated_at,
		   ur.role_id, r.name, COALESCE(m.display_name, m.email)
	FROM profiles p
	LEFT JOIN user_roles ur ON ur.user_id = p.id
	LEFT JOIN roles r ON r.id = ur.role_id
	LEFT JOIN profiles m ON m.id = p.manager_id
`

func scanProfile(row pgx.Row) (user.Profile, error) {
	var p user.Profile
	err := row.Scan(
		&p.ID,
		&p.DisplayName,
		&p.Email,
		&p.PasswordHash,
		&p.OAuthProvider,
		&p.OAuthProviderID,
		&p.ManagerID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RoleID,
		&p.RoleName,
		&p.ManagerName,
	)
	return p, err
}

// Create implements user.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, profile user.Profile, role user.RoleName) (user.Profile, error) {
	var created user.Profile

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		var id string
		err := q.QueryRow(txCtx, `
			INSERT INTO profiles (display_name, email, password_hash, oauth_provider, oauth_provider_id)
			VALUES ($1, LOWER($2), $3, $4, $5)
			RETURNING id
		`, profile.DisplayName, profile.Email, profile.PasswordHash, profile.OAuthProvider, profile.OAuthProviderID).Scan(&id)
		if err != nil {
			if code, _ := pgErrorCode(err); code == pgUniqueViolation {
				return user.ErrUserEmailExists
			}
			return fmt.Errorf("failed to insert profile: %w", err)
		}

		tag, err := q.Exec(txCtx, `
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2
		`, id, role)
		if err != nil {
			return fmt.Errorf("failed to assign role: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return user.ErrRoleNotFound
		}

		created, err = scanProfile(q.QueryRow(txCtx, profileSelect+` WHERE p.id = $1`, id))
		if err != nil {
			return fmt.Errorf("failed to reload profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.Profile{}, err
	}
	return created, nil
}

// GetByID implements user.ProfileRepository.
func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanProfile(q.QueryRow(ctx, profileSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrUserNotFound
		}
		return user.Profile{}, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return p, nil
}

// GetByEmail implements user.ProfileRepository.
func (r *profileRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanProfile(q.QueryRow(ctx, profileSelect+` WHERE p.email = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrUserNotFound
		}
		return user.Profile{}, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return p, nil
}

// List implements user.ProfileRepository.
func (r *profileRepositoryImpl) List(ctx context.Context) ([]user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, profileSelect+` ORDER BY COALESCE(p.display_name, p.email)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []user.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// LinkGoogleAccount implements user.ProfileRepository.
func (r *profileRepositoryImpl) LinkGoogleAccount(ctx context.Context, id string, googleID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE profiles
		SET oauth_provider = 'google', oauth_provider_id = $1, updated_at = NOW()
		WHERE id = $2
	`, googleID, id)
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// reportingTreeLockKey is the advisory lock held while manager_id changes.
const reportingTreeLockKey int64 = 0x6d67725f74726565

// ReportsTo implements user.ProfileRepository.
func (r *profileRepositoryImpl) ReportsTo(ctx context.Context, userID string, managerID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH RECURSIVE chain AS (
			SELECT id, manager_id, 1 AS depth FROM profiles WHERE id = $1
			UNION ALL
			SELECT p.id, p.manager_id, c.depth + 1
			FROM profiles p
			JOIN chain c ON p.id = c.manager_id
			WHERE c.depth < 1000
		)
		SELECT EXISTS(SELECT 1 FROM chain WHERE manager_id = $2)
	`

	var reports bool
	if err := q.QueryRow(ctx, query, userID, managerID).Scan(&reports); err != nil {
		return false, fmt.Errorf("failed to walk reporting chain: %w", err)
	}
	return reports, nil
}

// UpdateAssignment implements user.ProfileRepository.
func (r *profileRepositoryImpl) UpdateAssignment(ctx context.Context, userID string, roleID *int, managerID *string) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		if managerID != nil {
			// Serializes reporting-tree writers so two crossing assignments
			// cannot both pass the cycle check.
			if _, err := q.Exec(txCtx, `SELECT pg_advisory_xact_lock($1)`, reportingTreeLockKey); err != nil {
				return fmt.Errorf("failed to lock reporting tree: %w", err)
			}
			cycle, err := r.ReportsTo(txCtx, *managerID, userID)
			if err != nil {
				return err
			}
			if cycle {
				return user.ErrManagerCycle
			}
		}

		if roleID != nil {
			_, err := q.Exec(txCtx, `
				INSERT INTO user_roles (user_id, role_id)
				VALUES ($1, $2)
				ON CONFLICT (user_id) DO UPDATE SET role_id = EXCLUDED.role_id
			`, userID, *roleID)
			if err != nil {
				if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
					return user.ErrRoleNotFound
				}
				return fmt.Errorf("failed to upsert role: %w", err)
			}
		} else {
			if _, err := q.Exec(txCtx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
				return fmt.Errorf("failed to clear role: %w", err)
			}
		}

		tag, err := q.Exec(txCtx, `
			UPDATE profiles SET manager_id = $1, updated_at = NOW() WHERE id = $2
		`, managerID, userID)
		if err != nil {
			switch code, _ := pgErrorCode(err); code {
			case pgCheckViolation:
				return user.ErrSelfManager
			case pgForeignKeyViolation:
				return user.ErrManagerNotFound
			}
			return fmt.Errorf("failed to update manager: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return user.ErrUserNotFound
		}
		return nil
	})
}
