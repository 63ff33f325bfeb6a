package account

import (
	"context"
	"strings"

	"github.com/solarsmart/account-service/internal/domain"
	"github.com/solarsmart/account-service/internal/logger"
)

// Login authenticates a user, records last_login, and issues a token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)

	if email == "" {
		return AuthResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			// Hide not-found behind invalid credentials.
			return AuthResult{}, domain.ErrInvalidCredentials()
		}
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	now := s.now()
	if err := s.users.RecordLogin(ctx, u.ID, now); err != nil {
		// The credential check already passed; a failed timestamp write must
		// not turn a good login into a 5xx.
		logger.Logger.Warn().Err(err).Int64("user_id", u.ID).Msg("last_login not recorded")
	} else {
		u.LastLogin = &now
	}

	toks, err := s.issueToken(u)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: u, Tokens: toks}, nil
}
