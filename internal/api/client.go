// Package api объединяет запросы к бэкенду с мок-операциями: каждая операция
// проверяет входные данные, выполняет настоящий запрос и при недоступности
// бэкенда возвращает результат мок-операции.
package api

import (
	"context"
	"errors"
	"net/url"

	"github.com/mmeshcher/baedariyo/internal/fallback"
	"github.com/mmeshcher/baedariyo/internal/mock"
	"github.com/mmeshcher/baedariyo/internal/validation"
)

// ErrValidation оборачивает ошибки проверки входных данных. Такие запросы
// до бэкенда не доходят.
var ErrValidation = validation.ErrInvalid

// ErrEmptyResponse возвращается, когда бэкенд ответил без тела там, где тело обязательно.
var ErrEmptyResponse = errors.New("empty backend response")

// Backend описывает транспорт до настоящего API.
type Backend interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Client реализует операции клиентского API.
type Client struct {
	backend    Backend
	mock       *mock.State
	dispatcher *fallback.Dispatcher
	validate   *validation.Validator
}

// NewClient создаёт клиент API поверх бэкенда, мок-состояния и диспетчера.
func NewClient(backend Backend, state *mock.State, dispatcher *fallback.Dispatcher) *Client {
	return &Client{
		backend:    backend,
		mock:       state,
		dispatcher: dispatcher,
		validate:   validation.New(),
	}
}

func call[T any](ctx context.Context, c *Client, apiName, method, path string, query url.Values, body any, mockFn func() (T, error)) (T, error) {
	return fallback.Do(ctx, c.dispatcher, apiName, func(ctx context.Context) (T, error) {
		var out T
		if err := c.backend.Do(ctx, method, path, query, body, &out); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}, mockFn)
}

func segment(v string) string {
	return url.PathEscape(v)
}
