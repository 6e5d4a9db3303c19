package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/akozyrev/userpower-backend/pkg/db/models"
	dbtypes "github.com/akozyrev/userpower-backend/pkg/db/types"
	"github.com/akozyrev/userpower-backend/pkg/enums"
)

// usersTableDDL mirrors the Postgres schema with sqlite-friendly column
// types; the roles array column degrades to its text literal form.
const usersTableDDL = `CREATE TABLE users (
  id            TEXT PRIMARY KEY,
  name          TEXT NOT NULL,
  surname       TEXT NOT NULL,
  email         TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  is_active     INTEGER NOT NULL DEFAULT 1,
  roles         TEXT NOT NULL,
  created_at    DATETIME,
  updated_at    DATETIME
);`

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(usersTableDDL).Error)
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, active bool, roles ...enums.PortalRole) *models.User {
	t.Helper()
	if len(roles) == 0 {
		roles = []enums.PortalRole{enums.PortalRoleUser}
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Nikolai",
		Surname:      "Sviridov",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "$argon2id$stub",
		IsActive:     active,
		Roles:        dbtypes.RoleList(roles),
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func TestRepositoryFindByIDIncludesInactive(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	user := seedUser(t, conn, false)

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
	assert.True(t, found.Roles.Has(enums.PortalRoleUser))
}

func TestRepositoryFindByEmail(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	user := seedUser(t, conn, true)

	found, err := repo.FindByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeactivateOnlyHitsActiveRows(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	user := seedUser(t, conn, true)

	done, err := repo.Deactivate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, done)

	// second call finds no active row
	done, err = repo.Deactivate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, done)

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestRepositoryUpdateFieldsSkipsInactiveRows(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	active := seedUser(t, conn, true)
	inactive := seedUser(t, conn, false)

	name := "Petr"
	done, err := repo.UpdateFields(context.Background(), active.ID, UpdateUserDTO{Name: &name})
	require.NoError(t, err)
	assert.True(t, done)

	found, err := repo.FindByID(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, "Petr", found.Name)

	done, err = repo.UpdateFields(context.Background(), inactive.ID, UpdateUserDTO{Name: &name})
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRepositoryUpdateFieldsNormalizesEmail(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	user := seedUser(t, conn, true)

	email := "  Petr@Example.COM "
	done, err := repo.UpdateFields(context.Background(), user.ID, UpdateUserDTO{Email: &email})
	require.NoError(t, err)
	require.True(t, done)

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "petr@example.com", found.Email)
}

func TestRepositoryUpdateRoles(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	user := seedUser(t, conn, true)

	done, err := repo.UpdateRoles(context.Background(), user.ID, user.Roles.With(enums.PortalRoleAdmin))
	require.NoError(t, err)
	require.True(t, done)

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, found.Roles.Has(enums.PortalRoleAdmin))
	assert.True(t, found.Roles.Has(enums.PortalRoleUser))
}
