package http_handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/solarsmart/account-service/internal/application/account"
	"github.com/solarsmart/account-service/internal/domain"
	"github.com/solarsmart/account-service/internal/logger"
	"github.com/solarsmart/account-service/internal/transport/http/dto"
	"github.com/solarsmart/account-service/internal/transport/http/middleware"
	"github.com/solarsmart/account-service/internal/transport/http/response"
)

type AccountHandler struct {
	svc *account.Service
}

func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register handles POST /api/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	response.OK(w, dto.NewAuthData(res))
}

// Login handles POST /api/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.NewAuthData(res))
}

// ListUsers handles GET /api/users (admin only, enforced by the router).
func (h *AccountHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.UserListData{
		Users: dto.NewUserViews(users),
		Count: len(users),
	})
}

// UpdateUser handles PUT /api/users/{id} (self or admin).
func (h *AccountHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	targetID, err := userIDParam(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdateUser(r.Context(), actor, targetID, account.UpdateInput{
		Name:   req.Name,
		Email:  req.Email,
		Gender: req.Gender,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUserView(u))
}

// DeleteUser handles DELETE /api/users/{id} (self or admin).
func (h *AccountHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	targetID, err := userIDParam(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteUser(r.Context(), actor, targetID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", targetID).
		Int64("actor_id", actor.UserID).
		Msg("user_deleted")

	response.OK(w, dto.StatusData{Status: "deleted"})
}

// SetUserRole handles POST /api/users/{id}/role (admin only).
func (h *AccountHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	targetID, err := userIDParam(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.SetRoleRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.SetUserRole(r.Context(), actor, targetID, req.Role)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", targetID).
		Str("role", u.Role).
		Msg("user_role_updated")

	response.OK(w, dto.NewUserView(u))
}

// Stats handles GET /api/stats (public dashboard numbers).
func (h *AccountHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.UserStats(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewStatsData(stats))
}

// Test handles GET /api/test, a plain liveness probe for the frontend.
func (h *AccountHandler) Test(w http.ResponseWriter, r *http.Request) {
	response.OK(w, dto.StatusData{Status: "ok"})
}

// ---- helpers ----

func actorFromContext(r *http.Request) (account.Actor, error) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return account.Actor{}, domain.ErrTokenInvalid()
	}
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		return account.Actor{}, domain.ErrTokenInvalid()
	}
	return account.Actor{UserID: uid, Role: role}, nil
}

func userIDParam(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	if raw == "" {
		return 0, domain.ErrMissingField("id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidField("id", "must be a positive integer")
	}
	return id, nil
}
