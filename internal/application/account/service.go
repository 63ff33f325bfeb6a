package account

import (
	"time"

	"github.com/solarsmart/account-service/internal/domain"
)

type Service struct {
	users  UserStore
	hasher PasswordHasher
	signer TokenSigner
	pub    EventPublisher

	tokenTTL time.Duration
	now      func() time.Time
}

type Config struct {
	TokenTTL time.Duration
}

func NewService(
	users UserStore,
	hasher PasswordHasher,
	signer TokenSigner,
	pub EventPublisher,
	cfg Config,
) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		pub:      pub,
		tokenTTL: ttl,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken string
	TokenType   string // "Bearer"
	ExpiresIn   int64  // seconds
}

type AuthResult struct {
	User   domain.User
	Tokens AuthTokens
}

func (s *Service) issueToken(u domain.User) (AuthTokens, error) {
	access, err := s.signer.SignAccessToken(u.ID, u.Email, u.Role, s.tokenTTL)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenSignFailed(err)
	}
	return AuthTokens{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

// Actor identifies the authenticated caller of a protected operation.
type Actor struct {
	UserID int64
	Role   string
}

// canTouch reports whether the actor may edit or delete the target row.
// Admins may touch anyone; everyone else only themselves.
func (a Actor) canTouch(targetID int64) bool {
	return a.Role == string(domain.RoleAdmin) || a.UserID == targetID
}
