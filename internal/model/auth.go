package model

// Role описывает роль пользователя клиента.
type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
)

// SignupRequest запрос на регистрацию. VehicleType используется только курьерами.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Nickname    string `json:"nickname,omitempty"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	VehicleType string `json:"vehicleType,omitempty"`
}

// LoginRequest запрос на вход.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupResult ответ на регистрацию. Для курьера заполняется RiderID и VehicleType.
type SignupResult struct {
	UserID      int64  `json:"userId,omitempty"`
	RiderID     int64  `json:"riderId,omitempty"`
	Email       string `json:"email"`
	Nickname    string `json:"nickname"`
	VehicleType string `json:"vehicleType,omitempty"`
}

// LoginResult ответ на вход.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId,omitempty"`
	RiderID      int64  `json:"riderId,omitempty"`
	Email        string `json:"email"`
}

// WithdrawResult ответ на удаление аккаунта.
type WithdrawResult struct {
	Success bool `json:"success"`
}
