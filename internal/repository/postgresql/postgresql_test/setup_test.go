package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/database"
	"github.com/cmlabs-hris/timeoff-portal/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// newTestDB connects to TEST_DATABASE_URL, applies migrations once and
// empties every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	testDBSetup.Do(func() {
		m, err := database.NewMigrator(dsn)
		if err != nil {
			testDBErr = err
			return
		}
		defer m.Close()
		if err := m.Up(ctx); err != nil {
			testDBErr = err
			return
		}
		testDB, testDBErr = database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	})
	require.NoError(t, testDBErr)

	_, err := testDB.Exec(ctx, `TRUNCATE TABLE time_off_requests, time_off_policies, refresh_tokens, user_roles, profiles CASCADE`)
	require.NoError(t, err)

	return testDB
}

func createProfile(t *testing.T, db *database.DB, email string, role user.RoleName) user.Profile {
	t.Helper()

	name := email
	p, err := postgresql.NewProfileRepository(db).Create(context.Background(), user.Profile{
		DisplayName: &name,
		Email:       email,
	}, role)
	require.NoError(t, err)
	return p
}

func setManager(t *testing.T, db *database.DB, userID, managerID string) {
	t.Helper()

	p, err := postgresql.NewProfileRepository(db).GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, postgresql.NewProfileRepository(db).UpdateAssignment(context.Background(), userID, p.RoleID, &managerID))
}
