// Package handler содержит HTTP-обработчики шлюза.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/baedariyo/internal/backend"
	"github.com/mmeshcher/baedariyo/internal/localstate"
	"github.com/mmeshcher/baedariyo/internal/middleware"
	"github.com/mmeshcher/baedariyo/internal/model"
	"github.com/mmeshcher/baedariyo/internal/validation"
)

// API определяет операции клиентского API, которые проксирует шлюз.
type API interface {
	SignupUser(ctx context.Context, req model.SignupRequest) (*model.SignupResult, error)
	SignupRider(ctx context.Context, req model.SignupRequest) (*model.SignupResult, error)
	LoginUser(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error)
	LoginRider(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error)
	WithdrawUser(ctx context.Context) (*model.WithdrawResult, error)
	WithdrawRider(ctx context.Context) (*model.WithdrawResult, error)

	CreateStore(ctx context.Context, req model.CreateStoreRequest) (*model.CreateStoreResult, error)
	GetStoreDetail(ctx context.Context, storePublicID string) (*model.Store, error)
	GetStoreMenus(ctx context.Context, storePublicID string) ([]model.Menu, error)
	GetStoreReviews(ctx context.Context, storePublicID string) ([]model.StoreReview, error)

	CreateStoreReview(ctx context.Context, storePublicID string, req model.CreateStoreReviewRequest) (*model.CreateStoreReviewResult, error)
	GetMyReviews(ctx context.Context) ([]model.MyReview, error)
	GetReviewDetail(ctx context.Context, publicID string) (*model.ReviewDetail, error)
	DeleteMyReview(ctx context.Context, publicID string) (*model.DeleteReviewResult, error)

	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error)
	AssignRiderToOrder(ctx context.Context, req model.AssignRiderRequest) (*model.AssignRiderResult, error)

	CreatePayment(ctx context.Context, req model.CreatePaymentRequest) (int64, error)
	ApprovePayment(ctx context.Context, paymentID int64, req model.ApprovePaymentRequest) (*model.PaymentStatusResult, error)
	FailPayment(ctx context.Context, paymentID int64) (*model.PaymentStatusResult, error)
	CancelPayment(ctx context.Context, paymentID int64) (*model.PaymentStatusResult, error)
	GetPaymentDetail(ctx context.Context, paymentID int64) (*model.PaymentDetail, error)
	GetMyPayments(ctx context.Context, status string) ([]*model.Payment, error)

	SearchStores(ctx context.Context, q model.SearchQuery) (*model.SearchResult, error)
	GetSearchHistory(ctx context.Context, limit int) ([]string, error)
}

// LocalState определяет операции над сохранённым состоянием устройства.
type LocalState interface {
	ResetAll(ctx context.Context, owner string) error

	Session(ctx context.Context, owner string) (*model.Session, error)
	SaveSession(ctx context.Context, owner string, sess model.Session) error
	ClearSession(ctx context.Context, owner string) error

	Cart(ctx context.Context, owner string) (*model.Cart, error)
	AddCartItem(ctx context.Context, owner string, req model.AddCartItemRequest) (*model.Cart, error)
	IncrementCartItem(ctx context.Context, owner, itemKey string) (*model.Cart, error)
	DecrementCartItem(ctx context.Context, owner, itemKey string) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, owner, itemKey string) (*model.Cart, error)
	ClearCart(ctx context.Context, owner string) (*model.Cart, error)

	AddressBook(ctx context.Context, owner string) (*model.AddressBook, error)
	AddAddress(ctx context.Context, owner string, req model.AddAddressRequest) (*model.AddressBook, error)
	SetDefaultAddress(ctx context.Context, owner, addressID string) (*model.AddressBook, error)
	RemoveAddress(ctx context.Context, owner, addressID string) (*model.AddressBook, error)
	ClearAddresses(ctx context.Context, owner string) (*model.AddressBook, error)

	Profile(ctx context.Context, owner string) (*model.Profile, error)
	SaveProfile(ctx context.Context, owner string, upd model.ProfileUpdate) (*model.Profile, error)
	ResetProfile(ctx context.Context, owner string) (*model.Profile, error)

	Notifications(ctx context.Context, owner string) (*model.NotificationLog, error)
	PushNotification(ctx context.Context, owner string, req model.PushNotificationRequest) (*model.NotificationLog, error)
	UpdateNotificationSettings(ctx context.Context, owner string, upd model.NotificationSettingsUpdate) (*model.NotificationLog, error)
	MarkNotificationRead(ctx context.Context, owner, id string) (*model.NotificationLog, error)
	MarkAllNotificationsRead(ctx context.Context, owner string) (*model.NotificationLog, error)
	ClearNotifications(ctx context.Context, owner string) (*model.NotificationLog, error)
}

// Handler реализует HTTP-обработчики шлюза.
type Handler struct {
	api              API
	local            LocalState
	logger           *zap.Logger
	deviceMiddleware *middleware.DeviceMiddleware
	validate         *validation.Validator
	mapSDKURL        func() (string, error)
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(api API, local LocalState, logger *zap.Logger, device *middleware.DeviceMiddleware, mapSDKURL func() (string, error)) *Handler {
	return &Handler{
		api:              api,
		local:            local,
		logger:           logger,
		deviceMiddleware: device,
		validate:         validation.New(),
		mapSDKURL:        mapSDKURL,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

// writeError переводит ошибку API в HTTP-ответ: ошибка проверки даёт 400,
// ответ бэкенда передаётся со своим статусом, остальное даёт 502.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, validation.ErrInvalid) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var respErr *backend.ResponseError
	if errors.As(err, &respErr) {
		writeMessage(w, respErr.Status, respErr.Message)
		return
	}

	h.logger.Error("api request error", zap.String("op", op), zap.Error(err))
	writeMessage(w, http.StatusBadGateway, "backend request failed")
}

func (h *Handler) writeLocalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("local state error", zap.String("op", op), zap.Error(err))
	writeMessage(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// decodeBody разбирает JSON-тело запроса. Пустое тело допускается.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: malformed request body", validation.ErrInvalid)
}

func deviceID(r *http.Request) string {
	id, _ := middleware.GetDeviceIDFromContext(r.Context())
	return id
}

// apiContext добавляет в контекст токен доступа: из заголовка Authorization,
// а если его нет, то из сохранённой сессии устройства.
func (h *Handler) apiContext(r *http.Request) context.Context {
	ctx := r.Context()

	if auth := r.Header.Get("Authorization"); auth != "" {
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		return backend.WithAccessToken(ctx, token)
	}

	sess, err := h.local.Session(ctx, deviceID(r))
	if err != nil {
		if !errors.Is(err, localstate.ErrNoSession) {
			h.logger.Warn("load session error", zap.Error(err))
		}
		return ctx
	}
	return backend.WithAccessToken(ctx, sess.AccessToken)
}

func parseInt64Param(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", validation.ErrInvalid, name)
	}
	return v, nil
}

func parseIntQuery(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", validation.ErrInvalid, name)
	}
	return v, nil
}

type mapConfigResponse struct {
	SDKURL string `json:"sdkUrl"`
}

// GetMapConfig возвращает адрес SDK карты. Отсутствие ключа не подменяется
// мок-данными и возвращается клиенту как ошибка.
func (h *Handler) GetMapConfig(w http.ResponseWriter, r *http.Request) {
	sdkURL, err := h.mapSDKURL()
	if err != nil {
		h.logger.Error("map config error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapConfigResponse{SDKURL: sdkURL})
}

// pathParam возвращает параметр маршрута в раскодированном виде.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
