// Package middleware содержит HTTP middleware шлюза.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const deviceIDKey contextKey = "deviceID"

const (
	deviceCookieName = "device_id"
	deviceCookieTTL  = 365 * 24 * time.Hour
)

// DeviceMiddleware привязывает запрос к устройству по подписанному cookie.
// Устройство без действительного cookie получает новый идентификатор.
type DeviceMiddleware struct {
	secretKey []byte
	newID     func() string
}

// NewDeviceMiddleware создаёт middleware с указанным секретом подписи.
// Пустой секрет заменяется случайным, и тогда cookie живут до перезапуска процесса.
func NewDeviceMiddleware(secret string) *DeviceMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-device-secret")
		}
	}

	return &DeviceMiddleware{
		secretKey: key,
		newID:     uuid.NewString,
	}
}

// Middleware кладёт идентификатор устройства в контекст запроса.
func (d *DeviceMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := ""
		if cookie, err := r.Cookie(deviceCookieName); err == nil {
			if id, ok := d.parseCookie(cookie.Value); ok {
				deviceID = id
			}
		}

		if deviceID == "" {
			deviceID = d.newID()
			d.SetDeviceCookie(w, deviceID)
		}

		ctx := context.WithValue(r.Context(), deviceIDKey, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetDeviceCookie выставляет подписанный cookie устройства.
func (d *DeviceMiddleware) SetDeviceCookie(w http.ResponseWriter, deviceID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    d.sign(deviceID),
		Path:     "/",
		Expires:  time.Now().Add(deviceCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (d *DeviceMiddleware) signature(deviceID string) string {
	mac := hmac.New(sha256.New, d.secretKey)
	mac.Write([]byte(deviceID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (d *DeviceMiddleware) sign(deviceID string) string {
	return deviceID + "." + d.signature(deviceID)
}

func (d *DeviceMiddleware) parseCookie(value string) (string, bool) {
	idx := strings.LastIndex(value, ".")
	if idx <= 0 || idx == len(value)-1 {
		return "", false
	}

	deviceID, sig := value[:idx], value[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(d.signature(deviceID))) {
		return "", false
	}
	return deviceID, true
}

// WithDeviceID возвращает контекст с идентификатором устройства.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey, deviceID)
}

// GetDeviceIDFromContext извлекает идентификатор устройства из контекста запроса.
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(deviceIDKey).(string)
	return id, ok && id != ""
}
