package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// SignupUser регистрирует пользователя.
func (c *Client) SignupUser(ctx context.Context, req model.SignupRequest) (*model.SignupResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	return call(ctx, c, "signupUser", http.MethodPost, "/api/auth/user/signup", nil, req,
		func() (*model.SignupResult, error) { return c.mock.SignupUser(req) })
}

// SignupRider регистрирует курьера.
func (c *Client) SignupRider(ctx context.Context, req model.SignupRequest) (*model.SignupResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	return call(ctx, c, "signupRider", http.MethodPost, "/api/auth/rider/signup", nil, req,
		func() (*model.SignupResult, error) { return c.mock.SignupRider(req) })
}

// LoginUser выполняет вход пользователя.
func (c *Client) LoginUser(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	res, err := call(ctx, c, "loginUser", http.MethodPost, "/api/auth/user/login", nil, req,
		func() (*model.LoginResult, error) { return c.mock.LoginUser(req) })
	return loggedIn(res, err)
}

// LoginRider выполняет вход курьера.
func (c *Client) LoginRider(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	res, err := call(ctx, c, "loginRider", http.MethodPost, "/api/auth/rider/login", nil, req,
		func() (*model.LoginResult, error) { return c.mock.LoginRider(req) })
	return loggedIn(res, err)
}

// WithdrawUser удаляет аккаунт пользователя.
func (c *Client) WithdrawUser(ctx context.Context) (*model.WithdrawResult, error) {
	res, err := call(ctx, c, "withdrawUser", http.MethodPatch, "/api/auth/user/withdraw", nil, nil,
		c.mock.WithdrawUser)
	return withdrawn(res, err)
}

// WithdrawRider удаляет аккаунт курьера.
func (c *Client) WithdrawRider(ctx context.Context) (*model.WithdrawResult, error) {
	res, err := call(ctx, c, "withdrawRider", http.MethodPatch, "/api/auth/rider/withdraw", nil, nil,
		c.mock.WithdrawRider)
	return withdrawn(res, err)
}

// Бэкенд может ответить на удаление аккаунта пустым телом.
func withdrawn(res *model.WithdrawResult, err error) (*model.WithdrawResult, error) {
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &model.WithdrawResult{Success: true}
	}
	return res, nil
}

// Без токенов вход не состоялся.
func loggedIn(res *model.LoginResult, err error) (*model.LoginResult, error) {
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("login: %w", ErrEmptyResponse)
	}
	return res, nil
}
