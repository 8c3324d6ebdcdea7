package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewProfileRepository(db)
	ctx := context.Background()

	created := createProfile(t, db, "Ana@Example.com", user.RoleEmployee)
	assert.Equal(t, "ana@example.com", created.Email)
	require.NotNil(t, created.RoleName)
	assert.Equal(t, user.RoleEmployee, *created.RoleName)

	byEmail, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.Create(ctx, user.Profile{Email: "ana@example.com"}, user.RoleEmployee)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.GetByID(ctx, "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestProfileRepository_UpdateAssignment(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewProfileRepository(db)
	roles := postgresql.NewRoleRepository(db)
	ctx := context.Background()

	boss := createProfile(t, db, "boss@example.com", user.RoleManager)
	emp := createProfile(t, db, "emp@example.com", user.RoleEmployee)

	all, err := roles.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	var managerRole user.Role
	for _, r := range all {
		if r.Name == user.RoleManager {
			managerRole = r
		}
	}

	require.NoError(t, repo.UpdateAssignment(ctx, emp.ID, &managerRole.ID, &boss.ID))

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, got.Role())
	require.NotNil(t, got.ManagerID)
	assert.Equal(t, boss.ID, *got.ManagerID)
	require.NotNil(t, got.ManagerName)
	assert.Equal(t, "boss@example.com", *got.ManagerName)

	require.NoError(t, repo.UpdateAssignment(ctx, emp.ID, &managerRole.ID, nil))
	got, err = repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ManagerID)
}

func TestProfileRepository_UpdateAssignmentIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewProfileRepository(db)
	ctx := context.Background()

	emp := createProfile(t, db, "emp@example.com", user.RoleEmployee)
	originalRole := *emp.RoleID
	missingManager := "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
	otherRole := originalRole - 1

	err := repo.UpdateAssignment(ctx, emp.ID, &otherRole, &missingManager)
	assert.ErrorIs(t, err, user.ErrManagerNotFound)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RoleID)
	assert.Equal(t, originalRole, *got.RoleID)
}

func TestProfileRepository_SelfManagerRejected(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	emp := createProfile(t, db, "emp@example.com", user.RoleEmployee)
	err := repo.UpdateAssignment(context.Background(), emp.ID, emp.RoleID, &emp.ID)
	assert.ErrorIs(t, err, user.ErrSelfManager)
}

func TestProfileRepository_ReportsTo(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewProfileRepository(db)
	ctx := context.Background()

	ceo := createProfile(t, db, "ceo@example.com", user.RoleSuperAdmin)
	lead := createProfile(t, db, "lead@example.com", user.RoleManager)
	dev := createProfile(t, db, "dev@example.com", user.RoleEmployee)
	setManager(t, db, lead.ID, ceo.ID)
	setManager(t, db, dev.ID, lead.ID)

	reports, err := repo.ReportsTo(ctx, dev.ID, ceo.ID)
	require.NoError(t, err)
	assert.True(t, reports)

	reports, err = repo.ReportsTo(ctx, ceo.ID, dev.ID)
	require.NoError(t, err)
	assert.False(t, reports)
}

func TestProfileRepository_UpdateAssignmentRejectsCycle(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewProfileRepository(db)
	ctx := context.Background()

	ceo := createProfile(t, db, "ceo@example.com", user.RoleSuperAdmin)
	dev := createProfile(t, db, "dev@example.com", user.RoleEmployee)
	setManager(t, db, dev.ID, ceo.ID)

	err := repo.UpdateAssignment(ctx, ceo.ID, ceo.RoleID, &dev.ID)
	assert.ErrorIs(t, err, user.ErrManagerCycle)

	got, err := repo.GetByID(ctx, ceo.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ManagerID)
}

func TestProfileRepository_ConcurrentCrossAssignments(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewProfileRepository(db)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := db.Exec(ctx, `TRUNCATE TABLE user_roles, profiles CASCADE`)
		require.NoError(t, err)
		a := createProfile(t, db, "a@example.com", user.RoleEmployee)
		b := createProfile(t, db, "b@example.com", user.RoleEmployee)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[0] = repo.UpdateAssignment(ctx, a.ID, a.RoleID, &b.ID)
		}()
		go func() {
			defer wg.Done()
			errs[1] = repo.UpdateAssignment(ctx, b.ID, b.RoleID, &a.ID)
		}()
		wg.Wait()

		var ok, cycles int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, user.ErrManagerCycle):
				cycles++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, cycles)

		reports, err := repo.ReportsTo(ctx, a.ID, a.ID)
		require.NoError(t, err)
		assert.False(t, reports)
	}
}
