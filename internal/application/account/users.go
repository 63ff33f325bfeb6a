package account

import (
	"context"
	"strings"

	"github.com/solarsmart/account-service/internal/domain"
	"github.com/solarsmart/account-service/internal/logger"
)

// ListUsers returns every user ordered by id ascending. The router gates this
// behind the admin role; the service trusts the verified actor.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

type UpdateInput struct {
	Name   string
	Email  string
	Gender string
}

// UpdateUser edits name/email/gender of a row. Non-admin actors may only edit
// their own row. Role is never touched here; see SetUserRole.
func (s *Service) UpdateUser(ctx context.Context, actor Actor, id int64, in UpdateInput) (domain.User, error) {
	if !actor.canTouch(id) {
		return domain.User{}, domain.ErrForbidden()
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" {
		return domain.User{}, domain.ErrMissingField("name")
	}
	if in.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if in.Gender == "" {
		in.Gender = domain.GenderUnknown
	}
	if !domain.IsValidGender(in.Gender) {
		return domain.User{}, domain.ErrInvalidField("gender", "must be male, female or unknown")
	}

	return s.users.Update(ctx, id, in.Name, in.Email, in.Gender)
}

// SetUserRole is the only path a role transition may take. Admin only
// (enforced by the router, re-checked here).
func (s *Service) SetUserRole(ctx context.Context, actor Actor, id int64, role string) (domain.User, error) {
	if actor.Role != string(domain.RoleAdmin) {
		return domain.User{}, domain.ErrInsufficientRole(string(domain.RoleAdmin))
	}
	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole(role)
	}
	return s.users.SetRole(ctx, id, role)
}

// DeleteUser removes a row. Non-admin actors may only delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actor Actor, id int64) error {
	if !actor.canTouch(id) {
		return domain.ErrForbidden()
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if s.pub != nil {
		if perr := s.pub.PublishUserDeleted(ctx, UserDeletedEvent{UserID: id}); perr != nil {
			logger.Logger.Warn().Err(perr).Int64("user_id", id).Msg("user_deleted event not published")
		}
	}
	return nil
}

type Stats struct {
	TotalUsers  int
	LatestUsers []domain.User // most recent first, at most 5
}

const latestUsersLimit = 5

// UserStats backs the dashboard widgets on the landing page.
func (s *Service) UserStats(ctx context.Context) (Stats, error) {
	total, latest, err := s.users.CountAndLatest(ctx, latestUsersLimit)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalUsers: total, LatestUsers: latest}, nil
}
