// Package backend предоставляет HTTP-клиент настоящего API доставки.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/mmeshcher/baedariyo/internal/fallback"
)

const (
	defaultTimeout = 10 * time.Second
	retryWaitMin   = 200 * time.Millisecond
	retryWaitMax   = 2 * time.Second
)

// ErrNotConfigured возвращается, если адрес бэкенда не задан.
var ErrNotConfigured = errors.New("backend base url not configured")

// ResponseError ответ бэкенда со статусом вне диапазона 2xx.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("backend responded with status %d: %s", e.Status, e.Message)
}

// StatusCode возвращает HTTP-статус ответа.
func (e *ResponseError) StatusCode() int { return e.Status }

// TransportError сбой связи с бэкендом: ответ не был получен.
type TransportError struct {
	code string
	err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable (%s): %v", e.code, e.err)
}

func (e *TransportError) Unwrap() error { return e.err }

// Code возвращает код сбоя соединения.
func (e *TransportError) Code() string { return e.code }

// Config параметры клиента.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
	Logger   *zap.Logger
}

// Client выполняет JSON-запросы к бэкенду.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewClient создаёт клиент. Повторы выполняются только при сбоях соединения,
// ответы с любым HTTP-статусом не повторяются.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	rc := retryablehttp.NewClient()
	rc.HTTPClient = httpClient
	rc.RetryMax = max(cfg.RetryMax, 0)
	rc.RetryWaitMin = retryWaitMin
	rc.RetryWaitMax = retryWaitMax
	rc.CheckRetry = retryOnConnectivity
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{log: log.Named("backend").Sugar()}

	return &Client{
		baseURL: normalizeBaseURL(cfg.BaseURL),
		http:    rc,
	}
}

func normalizeBaseURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return base
}

func retryOnConnectivity(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err == nil {
		return false, nil
	}
	return transportCode(err) != "", nil
}

type tokenKey struct{}

// WithAccessToken возвращает контекст, запросы с которым передают токен в
// заголовке Authorization.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// AccessToken возвращает токен из контекста.
func AccessToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Do выполняет запрос и декодирует тело ответа в out. Если ответ обёрнут в
// {"data": ...}, декодируется содержимое data.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil || c.baseURL == "" {
		return &TransportError{code: fallback.CodeNetwork, err: ErrNotConfigured}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody any
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ResponseError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return decodeEnvelope(raw, out)
}

func decodeEnvelope(raw []byte, out any) error {
	payload := raw

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		data := bytes.TrimSpace(envelope.Data)
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			payload = data
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("request failed with status code %d", status)
}

func classify(err error) error {
	if code := transportCode(err); code != "" {
		return &TransportError{code: code, err: err}
	}
	return fmt.Errorf("do request: %w", err)
}

// transportCode сопоставляет сетевую ошибку с кодом сбоя соединения.
func transportCode(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fallback.CodeTimedOut
	case errors.Is(err, syscall.ECONNREFUSED):
		return fallback.CodeConnRefused
	case errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EPIPE):
		return fallback.CodeConnAborted
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return fallback.CodeTimedOut
		}
		return fallback.CodeNotFound
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fallback.CodeTimedOut
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fallback.CodeNetwork
	}
	return ""
}

type leveledLogger struct {
	log *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.log.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{}) { l.log.Infow(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.log.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{}) { l.log.Warnw(msg, kv...) }
