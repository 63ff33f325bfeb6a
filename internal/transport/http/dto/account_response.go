package dto

import (
	"time"

	"github.com/solarsmart/account-service/internal/application/account"
	"github.com/solarsmart/account-service/internal/domain"
)

// UserView is the standard user payload. The password hash never appears in
// any response.
type UserView struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Gender    string     `json:"gender"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Gender:    u.Gender,
		Role:      u.Role,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserViews(users []domain.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserView(u))
	}
	return out
}

// TokensView is the standard access token payload.
type TokensView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

func NewTokensView(t account.AuthTokens) TokensView {
	return TokensView{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
	}
}

// AuthData is returned by register/login.
type AuthData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

func NewAuthData(res account.AuthResult) AuthData {
	return AuthData{
		User:   NewUserView(res.User),
		Tokens: NewTokensView(res.Tokens),
	}
}

// UserListData is returned by GET /api/users.
type UserListData struct {
	Users []UserView `json:"users"`
	Count int        `json:"count"`
}

// StatsData is returned by GET /api/stats.
type StatsData struct {
	TotalUsers  int        `json:"total_users"`
	LatestUsers []UserView `json:"latest_users"`
}

func NewStatsData(s account.Stats) StatsData {
	return StatsData{
		TotalUsers:  s.TotalUsers,
		LatestUsers: NewUserViews(s.LatestUsers),
	}
}

// StatusData is the trivial ok payload (GET /api/test and friends).
type StatusData struct {
	Status string `json:"status"` // "ok"
}
