package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "password", "role", "created_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(name, email, password, role\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id, name, email, password, role, created_at`).
			WithArgs("John", "john@example.com", "hashed", RoleUser).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(1, "John", "john@example.com", "hashed", "USER", now))

		u, err := repo.Create(ctx, "John", "john@example.com", "hashed", RoleUser)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.Equal(t, RoleUser, u.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.Create(ctx, "John", "john@example.com", "hashed", RoleUser)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, "John", "john@example.com", "hashed", RoleUser)
		assert.EqualError(t, err, "db error")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Find(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("ByEmail", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, email, password, role, created_at FROM users WHERE email = \$1`).
			WithArgs("john@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(1, "John", "john@example.com", "hashed", "ADMIN", time.Now()))

		u, err := repo.FindByEmail(ctx, "john@example.com")
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("ByEmail not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("ByID not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(uint(42)).
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.FindByID(ctx, 42)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
