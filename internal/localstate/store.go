// Package localstate хранит состояние клиента, привязанное к устройству:
// токены, корзину, адресную книгу, профиль и уведомления.
package localstate

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var (
	// ErrNotFound возвращается, если для ключа нет сохранённого значения.
	ErrNotFound = errors.New("local state not found")
	// ErrInvalidPayload возвращается, если хранилище отвергло сохраняемое значение.
	ErrInvalidPayload = errors.New("invalid local state payload")
)

// Store описывает хранилище значений, сгруппированных по владельцу (устройству).
type Store interface {
	Load(ctx context.Context, owner, key string) ([]byte, error)
	Save(ctx context.Context, owner, key string, payload []byte) error
	Delete(ctx context.Context, owner, key string) error
	Keys(ctx context.Context, owner string) ([]string, error)
	Close() error
}

// MemoryStore хранит значения в памяти процесса.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

// Load возвращает копию сохранённого значения.
func (m *MemoryStore) Load(_ context.Context, owner, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[owner][key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

// Save сохраняет копию значения.
func (m *MemoryStore) Save(_ context.Context, owner, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, ok := m.data[owner]
	if !ok {
		values = make(map[string][]byte)
		m.data[owner] = values
	}
	values[key] = slices.Clone(payload)
	return nil
}

// Delete удаляет значение. Отсутствие значения ошибкой не считается.
func (m *MemoryStore) Delete(_ context.Context, owner, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[owner], key)
	if len(m.data[owner]) == 0 {
		delete(m.data, owner)
	}
	return nil
}

// Keys возвращает отсортированный список ключей владельца.
func (m *MemoryStore) Keys(_ context.Context, owner string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data[owner]))
	for k := range m.data[owner] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close ничего не делает.
func (m *MemoryStore) Close() error { return nil }
