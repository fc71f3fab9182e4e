// Package mock реализует in-memory подмену API бэкенда: хранилище сущностей,
// построители сущностей, пересчёт агрегатов отзывов и набор мок-операций.
//
// Все операции возвращают глубокие копии, поэтому вызывающий код не может
// изменить внутреннее состояние через полученные значения.
package mock

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/baedariyo/internal/model"
)

const (
	// MockUserID идентификатор пользователя, от имени которого работают моки.
	MockUserID int64 = 101
	// MockRiderID идентификатор курьера, от имени которого работают моки.
	MockRiderID int64 = 201
	// DefaultStorePublicID публичный идентификатор начального магазина.
	DefaultStorePublicID = "11111111-1111-4111-8111-111111111111"
)

var (
	// ErrStoreNotFound возвращается при выключенном автосоздании магазинов.
	ErrStoreNotFound = errors.New("store not found")
	// ErrInvalidTransition возвращается в строгом режиме при недопустимой смене статуса платежа.
	ErrInvalidTransition = errors.New("invalid payment status transition")
)

// State хранит все мок-сущности и счётчики идентификаторов.
type State struct {
	mu sync.Mutex

	stores         []*model.Store
	reviewsByStore map[string][]model.StoreReview
	myReviews      []model.MyReview
	payments       []*model.Payment

	nextStoreID   int64
	nextMenuID    int64
	nextOrderID   int64
	nextPaymentID int64

	searchStores  []model.StoreSummary
	searchHistory []string

	now               func() time.Time
	newID             func() string
	autoProvision     bool
	strictTransitions bool
	tokens            *tokenIssuer
}

// Option настраивает State.
type Option func(*State)

// WithClock задаёт источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithIDGenerator задаёт генератор публичных идентификаторов.
func WithIDGenerator(newID func() string) Option {
	return func(s *State) { s.newID = newID }
}

// WithAutoProvision включает или выключает автосоздание магазина при первом
// обращении по неизвестному публичному идентификатору. По умолчанию включено.
func WithAutoProvision(enabled bool) Option {
	return func(s *State) { s.autoProvision = enabled }
}

// WithStrictTransitions включает таблицу допустимых переходов статусов платежа.
// По умолчанию любой статус можно выставить из любого.
func WithStrictTransitions(enabled bool) Option {
	return func(s *State) { s.strictTransitions = enabled }
}

// NewState создаёт состояние и наполняет его начальными данными.
func NewState(opts ...Option) (*State, error) {
	s := &State{
		reviewsByStore: make(map[string][]model.StoreReview),
		nextStoreID:    2,
		nextMenuID:     100,
		nextOrderID:    5000,
		nextPaymentID:  7000,
		now:            time.Now,
		newID:          uuid.NewString,
		autoProvision:  true,
		tokens:         newTokenIssuer(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := loadSeed()
	if err != nil {
		return nil, err
	}
	if err := s.applySeed(data); err != nil {
		return nil, err
	}

	s.recalculateAll()
	return s, nil
}

func (s *State) findStore(publicID string) *model.Store {
	for _, st := range s.stores {
		if st.StorePublicID == publicID {
			return st
		}
	}
	return nil
}

func (s *State) findStoreByID(id int64) *model.Store {
	for _, st := range s.stores {
		if st.ID == id {
			return st
		}
	}
	return nil
}

func (s *State) reviewsOf(publicID string) []model.StoreReview {
	reviews, ok := s.reviewsByStore[publicID]
	if !ok {
		reviews = []model.StoreReview{}
		s.reviewsByStore[publicID] = reviews
	}
	return reviews
}

// allocateStore выдаёт новый внутренний идентификатор и меню по умолчанию.
func (s *State) allocateStore() (int64, []model.Menu) {
	id := s.nextStoreID
	s.nextStoreID++

	menus := BuildDefaultMenus(id, s.nextMenuID)
	s.nextMenuID += int64(len(menus)) + 1
	return id, menus
}

func (s *State) registerStore(st *model.Store) {
	s.stores = append(s.stores, st)
	s.reviewsByStore[st.StorePublicID] = []model.StoreReview{}
}

// ensureStore находит магазин или создаёт его (режим автосоздания).
// Пустой идентификатор означает первый зарегистрированный магазин.
func (s *State) ensureStore(publicID string) (*model.Store, error) {
	trimmed := strings.TrimSpace(publicID)
	if trimmed == "" {
		if len(s.stores) == 0 {
			return nil, ErrStoreNotFound
		}
		return s.stores[0], nil
	}

	if st := s.findStore(trimmed); st != nil {
		return st, nil
	}

	if !s.autoProvision {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, trimmed)
	}

	id, menus := s.allocateStore()
	st := BuildStore(StoreInput{
		ID:            id,
		StorePublicID: trimmed,
		StoreName:     "Mock 가게 " + prefix(trimmed, 4),
		Menus:         menus,
	})
	s.registerStore(st)
	s.recalculate(trimmed)
	return st, nil
}

func prefix(v string, n int) string {
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n])
}

// EnsureStore возвращает копию магазина, создавая его при первом обращении.
func (s *State) EnsureStore(publicID string) (*model.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.ensureStore(publicID)
	if err != nil {
		return nil, err
	}
	return st.Clone(), nil
}
