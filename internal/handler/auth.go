package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/baedariyo/internal/model"
)

var errEmptyLogin = errors.New("login returned no tokens")

// SignupUser регистрирует пользователя.
func (h *Handler) SignupUser(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, "signupUser", h.api.SignupUser)
}

// SignupRider регистрирует курьера.
func (h *Handler) SignupRider(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, "signupRider", h.api.SignupRider)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, req model.SignupRequest) (*model.SignupResult, error)) {
	var req model.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, op, err)
		return
	}

	res, err := fn(r.Context(), req)
	if err != nil {
		h.writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// LoginUser выполняет вход пользователя и сохраняет токены устройства.
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, model.RoleUser, "loginUser", h.api.LoginUser)
}

// LoginRider выполняет вход курьера и сохраняет токены устройства.
func (h *Handler) LoginRider(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, model.RoleRider, "loginRider", h.api.LoginRider)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, role model.Role, op string,
	fn func(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error)) {
	var req model.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, op, err)
		return
	}

	res, err := fn(r.Context(), req)
	if err == nil && res == nil {
		err = errEmptyLogin
	}
	if err != nil {
		h.writeError(w, op, err)
		return
	}

	sess := model.Session{Role: role, AccessToken: res.AccessToken, RefreshToken: res.RefreshToken}
	if err := h.local.SaveSession(r.Context(), deviceID(r), sess); err != nil {
		h.logger.Error("save session error", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, res)
}

// WithdrawUser удаляет аккаунт пользователя и очищает сессию устройства.
func (h *Handler) WithdrawUser(w http.ResponseWriter, r *http.Request) {
	h.withdraw(w, r, "withdrawUser", h.api.WithdrawUser)
}

// WithdrawRider удаляет аккаунт курьера и очищает сессию устройства.
func (h *Handler) WithdrawRider(w http.ResponseWriter, r *http.Request) {
	h.withdraw(w, r, "withdrawRider", h.api.WithdrawRider)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context) (*model.WithdrawResult, error)) {
	res, err := fn(h.apiContext(r))
	if err != nil {
		h.writeError(w, op, err)
		return
	}

	if err := h.local.ClearSession(r.Context(), deviceID(r)); err != nil {
		h.logger.Error("clear session error", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, res)
}
