package mock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mmeshcher/baedariyo/internal/model"
)

const (
	defaultMockEmail       = "mock-user@baedariyo.com"
	defaultMockNickname    = "mock-user"
	defaultMockVehicleType = "MOTORCYCLE"

	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 14 * 24 * time.Hour
)

// tokenIssuer выпускает токены в формате JWT для мок-входа. Сервер их не проверяет.
type tokenIssuer struct {
	key []byte
}

func newTokenIssuer() *tokenIssuer {
	return &tokenIssuer{key: []byte("baedariyo-mock-signing-key")}
}

type tokenClaims struct {
	Role  model.Role `json:"role"`
	Email string     `json:"email"`
	Type  string     `json:"typ"`
	jwt.RegisteredClaims
}

func (t *tokenIssuer) issue(role model.Role, subject int64, email, tokenType string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		Role:  role,
		Email: email,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *State) login(role model.Role, subject int64, req model.LoginRequest) (*model.LoginResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = defaultMockEmail
	}
	now := s.now()

	access, err := s.tokens.issue(role, subject, email, "access", now, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.issue(role, subject, email, "refresh", now, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	res := &model.LoginResult{AccessToken: access, RefreshToken: refresh, Email: email}
	if role == model.RoleRider {
		res.RiderID = subject
	} else {
		res.UserID = subject
	}
	return res, nil
}

func signupDefaults(req model.SignupRequest) (string, string) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = defaultMockEmail
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = defaultMockNickname
	}
	return email, nickname
}

// SignupUser имитирует регистрацию пользователя.
func (s *State) SignupUser(req model.SignupRequest) (*model.SignupResult, error) {
	email, nickname := signupDefaults(req)
	return &model.SignupResult{UserID: MockUserID, Email: email, Nickname: nickname}, nil
}

// SignupRider имитирует регистрацию курьера.
func (s *State) SignupRider(req model.SignupRequest) (*model.SignupResult, error) {
	email, nickname := signupDefaults(req)
	vehicle := strings.TrimSpace(req.VehicleType)
	if vehicle == "" {
		vehicle = defaultMockVehicleType
	}
	return &model.SignupResult{RiderID: MockRiderID, Email: email, Nickname: nickname, VehicleType: vehicle}, nil
}

// LoginUser выпускает мок-токены пользователя.
func (s *State) LoginUser(req model.LoginRequest) (*model.LoginResult, error) {
	return s.login(model.RoleUser, MockUserID, req)
}

// LoginRider выпускает мок-токены курьера.
func (s *State) LoginRider(req model.LoginRequest) (*model.LoginResult, error) {
	return s.login(model.RoleRider, MockRiderID, req)
}

// WithdrawUser имитирует удаление аккаунта пользователя.
func (s *State) WithdrawUser() (*model.WithdrawResult, error) {
	return &model.WithdrawResult{Success: true}, nil
}

// WithdrawRider имитирует удаление аккаунта курьера.
func (s *State) WithdrawRider() (*model.WithdrawResult, error) {
	return &model.WithdrawResult{Success: true}, nil
}
