package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarsmart/account-service/internal/domain"
)

var userCols = []string{"id", "name", "email", "password_hash", "gender", "role", "last_login", "created_at"}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *UserStore) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create mock database")

	return db, mock, NewUserStore(db)
}

func TestUserStore_Insert_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("A", "a@x.com", "$2a$10$hash", "male", "user").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), "A", "a@x.com", "$2a$10$hash", "male", "user", nil, createdAt))

	u, err := store.Insert(context.Background(), domain.User{
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Gender:       "male",
		Role:         "user",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Nil(t, u.LastLogin)
	assert.Equal(t, createdAt, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Insert_UniqueViolation_EmailTaken(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("A", "a@x.com", "h", "unknown", "user").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := store.Insert(context.Background(), domain.User{
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "h",
	})

	require.Error(t, err)
	assert.True(t, domain.Is(err, "email_taken"), "expected email_taken, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Insert_MissingFields_NoQuery(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	_, err := store.Insert(context.Background(), domain.User{Email: "a@x.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, domain.Is(err, "missing_field"))

	_, err = store.Insert(context.Background(), domain.User{Name: "A", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, domain.Is(err, "missing_field"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByEmail_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	lastLogin := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(2), "A", "a@x.com", "h", "female", "admin", &lastLogin, time.Now()))

	u, err := store.GetByEmail(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
	assert.Equal(t, "admin", u.Role)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, lastLogin, *u.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByEmail_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByEmail(context.Background(), "missing@x.com")

	require.Error(t, err)
	assert.True(t, domain.Is(err, "user_not_found"), "expected user_not_found, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByID_DBError_Infrastructure(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(sql.ErrConnDone)

	_, err := store.GetByID(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, domain.Is(err, "db_unavailable"), "expected db_unavailable, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Update_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(9), "B", "b@x.com", "unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Update(context.Background(), 9, "B", "b@x.com", "unknown")

	require.Error(t, err)
	assert.True(t, domain.Is(err, "user_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Update_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(3), "B", "b@x.com", "female").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(3), "B", "b@x.com", "h", "female", "user", nil, time.Now()))

	u, err := store.Update(context.Background(), 3, "B", "b@x.com", "female")

	require.NoError(t, err)
	assert.Equal(t, "B", u.Name)
	assert.Equal(t, "b@x.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_SetRole_InvalidRole_NoQuery(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	_, err := store.SetRole(context.Background(), 1, "root")

	require.Error(t, err)
	assert.True(t, domain.Is(err, "invalid_role"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Delete_Success_And_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), 4))

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), 4)
	require.Error(t, err)
	assert.True(t, domain.Is(err, "user_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_ListAll_OrderedAscending(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), "A", "a@x.com", "h", "male", "user", nil, time.Now()).
			AddRow(int64(2), "B", "b@x.com", "h", "female", "admin", nil, time.Now()))

	users, err := store.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_CountAndLatest(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY id DESC LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(8), "H", "h@x.com", "h", "unknown", "user", nil, time.Now()).
			AddRow(int64(7), "G", "g@x.com", "h", "unknown", "user", nil, time.Now()).
			AddRow(int64(6), "F", "f@x.com", "h", "unknown", "user", nil, time.Now()).
			AddRow(int64(5), "E", "e@x.com", "h", "unknown", "user", nil, time.Now()).
			AddRow(int64(4), "D", "d@x.com", "h", "unknown", "user", nil, time.Now()))

	total, latest, err := store.CountAndLatest(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 8, total)
	require.Len(t, latest, 5)
	assert.Equal(t, int64(8), latest[0].ID, "most recent first")
	assert.Equal(t, int64(4), latest[4].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_RecordLogin(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE users SET last_login = \$2 WHERE id = \$1`).
		WithArgs(int64(1), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.RecordLogin(context.Background(), 1, at))

	mock.ExpectExec(`UPDATE users SET last_login = \$2 WHERE id = \$1`).
		WithArgs(int64(99), at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.RecordLogin(context.Background(), 99, at)
	require.Error(t, err)
	assert.True(t, domain.Is(err, "user_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_ExecutesDDL(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
