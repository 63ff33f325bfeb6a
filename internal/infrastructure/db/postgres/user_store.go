package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/solarsmart/account-service/internal/domain"
)

const userColumns = `id, name, email, password_hash, gender, role, last_login, created_at`

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// ---------- helpers ----------

func (s *UserStore) scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Gender,
		&ur.Role,
		&ur.LastLogin,
		&ur.CreatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		Gender:       ur.Gender,
		Role:         ur.Role,
		LastLogin:    ur.LastLogin,
		CreatedAt:    ur.CreatedAt,
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is the unique-constraint conflict
// raised when two registrations race on the same email.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ---------- account.UserStore ----------

func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := s.scanUserRow(s.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := s.scanUserRow(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

// Insert writes a new user. Uniqueness of email is enforced by the table
// constraint, not by a prior read, so a racing duplicate surfaces here as
// ErrEmailTaken no matter how the callers interleave.
func (s *UserStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Name == "" {
		return domain.User{}, domain.ErrMissingField("name")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Gender == "" {
		u.Gender = domain.GenderUnknown
	}
	if u.Role == "" {
		u.Role = string(domain.RoleUser)
	}

	const q = `
INSERT INTO users (name, email, password_hash, gender, role)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + userColumns + `;
`
	ur, err := s.scanUserRow(s.db.QueryRowContext(ctx, q,
		u.Name, u.Email, u.PasswordHash, u.Gender, u.Role,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (s *UserStore) Update(ctx context.Context, id int64, name, email, gender string) (domain.User, error) {
	const q = `
UPDATE users
SET name = $2, email = $3, gender = $4
WHERE id = $1
RETURNING ` + userColumns + `;
`
	ur, err := s.scanUserRow(s.db.QueryRowContext(ctx, q, id, name, email, gender))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (s *UserStore) SetRole(ctx context.Context, id int64, role string) (domain.User, error) {
	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole(role)
	}

	const q = `
UPDATE users
SET role = $2
WHERE id = $1
RETURNING ` + userColumns + `;
`
	ur, err := s.scanUserRow(s.db.QueryRowContext(ctx, q, id, role))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1;`

	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (s *UserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY id ASC;
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(
			&ur.ID,
			&ur.Name,
			&ur.Email,
			&ur.PasswordHash,
			&ur.Gender,
			&ur.Role,
			&ur.LastLogin,
			&ur.CreatedAt,
		); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		users = append(users, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return users, nil
}

// CountAndLatest returns the total row count and the n most recently created
// users, newest first. Two queries, no transaction: the dashboard tolerates a
// count that is momentarily off by a concurrent registration.
func (s *UserStore) CountAndLatest(ctx context.Context, n int) (int, []domain.User, error) {
	if n <= 0 {
		n = 5
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users;`).Scan(&total); err != nil {
		return 0, nil, domain.ErrDBUnavailable(err)
	}

	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY id DESC
LIMIT $1;
`
	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return 0, nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var latest []domain.User
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(
			&ur.ID,
			&ur.Name,
			&ur.Email,
			&ur.PasswordHash,
			&ur.Gender,
			&ur.Role,
			&ur.LastLogin,
			&ur.CreatedAt,
		); err != nil {
			return 0, nil, domain.ErrDBUnavailable(err)
		}
		latest = append(latest, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return 0, nil, domain.ErrDBUnavailable(err)
	}
	return total, latest, nil
}

func (s *UserStore) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	const q = `
UPDATE users
SET last_login = $2
WHERE id = $1;
`
	res, err := s.db.ExecContext(ctx, q, id, at)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
