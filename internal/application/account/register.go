package account

import (
	"context"
	"strings"

	"github.com/solarsmart/account-service/internal/domain"
	"github.com/solarsmart/account-service/internal/logger"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Gender   string
}

// Register creates a user and issues an access token.
//
// The pre-insert lookup gives a friendly rejection for the common case, but
// the uniqueness guarantee lives in the store: a registration racing past the
// lookup is converted into the same ErrEmailTaken by Insert.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" {
		return AuthResult{}, domain.ErrMissingField("name")
	}
	if in.Email == "" {
		return AuthResult{}, domain.ErrMissingField("email")
	}
	if in.Password == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}
	if in.Gender == "" {
		return AuthResult{}, domain.ErrMissingField("gender")
	}
	if !domain.IsValidGender(in.Gender) {
		return AuthResult{}, domain.ErrInvalidField("gender", "must be male, female or unknown")
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, domain.ErrEmailTaken()
	} else if !domain.Is(err, "user_not_found") {
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Gender:       in.Gender,
		Role:         string(domain.RoleUser),
	}

	created, err := s.users.Insert(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}

	toks, err := s.issueToken(created)
	if err != nil {
		return AuthResult{}, err
	}

	if s.pub != nil {
		if perr := s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID: created.ID,
			Name:   created.Name,
			Email:  created.Email,
		}); perr != nil {
			// Registration already committed; the event is best-effort.
			logger.Logger.Warn().Err(perr).Int64("user_id", created.ID).Msg("user_registered event not published")
		}
	}

	return AuthResult{User: created, Tokens: toks}, nil
}
