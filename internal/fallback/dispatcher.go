// Package fallback решает, выполнить ли запрос к бэкенду или подменить его
// мок-операцией, когда бэкенд недоступен.
package fallback

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Коды ошибок соединения, означающие недоступность бэкенда.
const (
	CodeNetwork     = "ERR_NETWORK"
	CodeConnAborted = "ECONNABORTED"
	CodeConnRefused = "ECONNREFUSED"
	CodeNotFound    = "ENOTFOUND"
	CodeTimedOut    = "ETIMEDOUT"
)

var networkCodes = map[string]struct{}{
	CodeNetwork:     {},
	CodeConnAborted: {},
	CodeConnRefused: {},
	CodeNotFound:    {},
	CodeTimedOut:    {},
}

var networkMessages = []string{
	"network error",
	"failed to fetch",
	"timeout",
	"load failed",
	"connection refused",
	"connection reset by peer",
	"broken pipe",
	"no such host",
}

// Ошибка с HTTP-статусом считается ответом бэкенда, а не сбоем связи.
type statusCoder interface {
	StatusCode() int
}

type codeCarrier interface {
	Code() string
}

// IsBackendUnavailable сообщает, означает ли ошибка, что бэкенд недостижим.
// Ошибки с HTTP-статусом и нераспознанные ошибки недоступностью не считаются.
func IsBackendUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return false
	}

	var cc codeCarrier
	if errors.As(err, &cc) {
		if _, ok := networkCodes[strings.ToUpper(cc.Code())]; ok {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, m := range networkMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// Dispatcher выполняет запросы с откатом на моки и один раз на каждый API
// пишет предупреждение о переходе на мок-данные.
type Dispatcher struct {
	log      *zap.Logger
	warnings bool

	mu     sync.Mutex
	warned map[string]struct{}
}

// NewDispatcher создаёт диспетчер. devWarnings включает предупреждения о
// переходе на мок-данные.
func NewDispatcher(log *zap.Logger, devWarnings bool) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		log:      log,
		warnings: devWarnings,
		warned:   make(map[string]struct{}),
	}
}

// Do выполняет request. Если бэкенд недоступен, результатом становится mock.
// Остальные ошибки возвращаются без изменений.
func Do[T any](ctx context.Context, d *Dispatcher, apiName string, request func(context.Context) (T, error), mock func() (T, error)) (T, error) {
	res, err := request(ctx)
	if err == nil {
		return res, nil
	}

	if !IsBackendUnavailable(err) {
		var zero T
		return zero, err
	}

	d.warnOnce(apiName, err)
	return mock()
}

func (d *Dispatcher) warnOnce(apiName string, cause error) {
	if !d.warnings || strings.TrimSpace(apiName) == "" {
		return
	}

	d.mu.Lock()
	_, seen := d.warned[apiName]
	d.warned[apiName] = struct{}{}
	d.mu.Unlock()

	if seen {
		return
	}
	d.log.Warn("backend unavailable, serving mock data",
		zap.String("api", apiName),
		zap.Error(cause),
	)
}
