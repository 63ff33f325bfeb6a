package account

import (
	"context"
	"time"

	"github.com/solarsmart/account-service/internal/domain"
)

/*
UserStore
---------
Persistence port for users. The store is the single source of truth; the
service never caches rows across requests. Insert must enforce email
uniqueness atomically at the point of write and report a racing duplicate
as ErrEmailTaken.
*/
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Insert(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, id int64, name, email, gender string) (domain.User, error)
	SetRole(ctx context.Context, id int64, role string) (domain.User, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.User, error)
	CountAndLatest(ctx context.Context, n int) (int, []domain.User, error)
	RecordLogin(ctx context.Context, id int64, at time.Time) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID int64
	Email  string
	Role   string
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID int64, email, role string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

/*
EventPublisher
--------------
Publishes user lifecycle events to the message broker. Downstream consumers
(welcome mail, analytics) are outside this service.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
	PublishUserDeleted(ctx context.Context, evt UserDeletedEvent) error
}

type UserRegisteredEvent struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type UserDeletedEvent struct {
	UserID int64 `json:"user_id"`
}
