package localstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// Ключи значений, сохраняемых для устройства.
const (
	KeySession       = "auth-tokens"
	KeyCart          = "cart-storage"
	KeyAddressBook   = "address-book-storage"
	KeyProfile       = "profile-storage"
	KeyNotifications = "notification-storage"
)

const (
	notificationLimit     = 100
	defaultAddressLabel   = "기본 주소"
	defaultNotification   = "알림"
	welcomeNotificationID = "welcome-notification"
)

// ErrNoSession возвращается, если для устройства не сохранены токены.
var ErrNoSession = errors.New("no session stored")

// Service реализует операции над состоянием устройства поверх Store.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string

	// Операции чтение-изменение-запись одного устройства не должны пересекаться.
	mu sync.Mutex
}

// Option настраивает Service.
type Option func(*Service)

// WithClock задаёт источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator задаёт генератор идентификаторов адресов и уведомлений.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService создаёт сервис состояния устройства.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close закрывает хранилище.
func (s *Service) Close() error {
	return s.store.Close()
}

func load[T any](ctx context.Context, s *Service, owner, key string, initial func() T) (T, error) {
	raw, err := s.store.Load(ctx, owner, key)
	if errors.Is(err, ErrNotFound) {
		return initial(), nil
	}
	if err != nil {
		var zero T
		return zero, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

func (s *Service) save(ctx context.Context, owner, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Save(ctx, owner, key, payload)
}

// ResetAll удаляет всё состояние устройства.
func (s *Service) ResetAll(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.store.Keys(ctx, owner)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, owner, key); err != nil {
			return err
		}
	}
	return nil
}

// Session возвращает сохранённые токены.
func (s *Service) Session(ctx context.Context, owner string) (*model.Session, error) {
	raw, err := s.store.Load(ctx, owner, KeySession)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeySession, err)
	}
	return &sess, nil
}

// SaveSession сохраняет токены после входа.
func (s *Service) SaveSession(ctx context.Context, owner string, sess model.Session) error {
	return s.save(ctx, owner, KeySession, sess)
}

// ClearSession удаляет токены.
func (s *Service) ClearSession(ctx context.Context, owner string) error {
	return s.store.Delete(ctx, owner, KeySession)
}

func emptyCart() model.Cart {
	return model.Cart{Items: []model.CartItem{}}
}

// CartItemKey строит ключ позиции корзины: магазин, меню и отсортированная
// сигнатура выбранных опций.
func CartItemKey(storePublicID, menuID string, options []model.SelectedOption) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		parts = append(parts, o.GroupID+":"+o.OptionName+":"+strconv.FormatInt(o.OptionPriceAmount, 10))
	}
	sort.Strings(parts)
	return storePublicID + ":" + menuID + ":" + strings.Join(parts, "|")
}

// Cart возвращает корзину устройства.
func (s *Service) Cart(ctx context.Context, owner string) (*model.Cart, error) {
	cart, err := load(ctx, s, owner, KeyCart, emptyCart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *Service) updateCart(ctx context.Context, owner string, fn func(*model.Cart)) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := load(ctx, s, owner, KeyCart, emptyCart)
	if err != nil {
		return nil, err
	}
	fn(&cart)
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	if err := s.save(ctx, owner, KeyCart, cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem добавляет позицию. Если позиция с тем же ключом уже есть,
// увеличивается её количество.
func (s *Service) AddCartItem(ctx context.Context, owner string, req model.AddCartItemRequest) (*model.Cart, error) {
	qty := max(req.Quantity, 1)
	options := make([]model.SelectedOption, len(req.SelectedOptions))
	copy(options, req.SelectedOptions)
	key := CartItemKey(req.StorePublicID, req.MenuID, options)

	return s.updateCart(ctx, owner, func(cart *model.Cart) {
		for i := range cart.Items {
			if cart.Items[i].ItemKey == key {
				cart.Items[i].Quantity += qty
				return
			}
		}
		cart.Items = append(cart.Items, model.CartItem{
			ItemKey:         key,
			StorePublicID:   req.StorePublicID,
			StoreID:         req.StoreID,
			StoreName:       req.StoreName,
			MenuID:          req.MenuID,
			MenuNumericID:   req.MenuNumericID,
			MenuName:        req.MenuName,
			MenuDescription: req.MenuDescription,
			BasePriceAmount: req.BasePriceAmount,
			SelectedOptions: options,
			Quantity:        qty,
		})
	})
}

// IncrementCartItem увеличивает количество позиции на единицу.
func (s *Service) IncrementCartItem(ctx context.Context, owner, itemKey string) (*model.Cart, error) {
	return s.updateCart(ctx, owner, func(cart *model.Cart) {
		for i := range cart.Items {
			if cart.Items[i].ItemKey == itemKey {
				cart.Items[i].Quantity++
			}
		}
	})
}

// DecrementCartItem уменьшает количество позиции; позиция с нулевым количеством удаляется.
func (s *Service) DecrementCartItem(ctx context.Context, owner, itemKey string) (*model.Cart, error) {
	return s.updateCart(ctx, owner, func(cart *model.Cart) {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ItemKey == itemKey {
				item.Quantity--
			}
			if item.Quantity > 0 {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	})
}

// RemoveCartItem удаляет позицию.
func (s *Service) RemoveCartItem(ctx context.Context, owner, itemKey string) (*model.Cart, error) {
	return s.updateCart(ctx, owner, func(cart *model.Cart) {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ItemKey != itemKey {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	})
}

// ClearCart очищает корзину.
func (s *Service) ClearCart(ctx context.Context, owner string) (*model.Cart, error) {
	return s.updateCart(ctx, owner, func(cart *model.Cart) {
		cart.Items = []model.CartItem{}
	})
}

func emptyAddressBook() model.AddressBook {
	return model.AddressBook{Addresses: []model.Address{}}
}

// AddressBook возвращает адресную книгу устройства.
func (s *Service) AddressBook(ctx context.Context, owner string) (*model.AddressBook, error) {
	book, err := load(ctx, s, owner, KeyAddressBook, emptyAddressBook)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *Service) updateAddressBook(ctx context.Context, owner string, fn func(*model.AddressBook)) (*model.AddressBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := load(ctx, s, owner, KeyAddressBook, emptyAddressBook)
	if err != nil {
		return nil, err
	}
	fn(&book)
	if book.Addresses == nil {
		book.Addresses = []model.Address{}
	}
	if err := s.save(ctx, owner, KeyAddressBook, book); err != nil {
		return nil, err
	}
	return &book, nil
}

// AddAddress добавляет адрес. Первый адрес или адрес с IsDefault становится адресом по умолчанию.
func (s *Service) AddAddress(ctx context.Context, owner string, req model.AddAddressRequest) (*model.AddressBook, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = defaultAddressLabel
	}
	addr := model.Address{
		ID:            "addr-" + s.newID(),
		Label:         label,
		RecipientName: strings.TrimSpace(req.RecipientName),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		RoadAddress:   strings.TrimSpace(req.RoadAddress),
		JibunAddress:  strings.TrimSpace(req.JibunAddress),
		DetailAddress: strings.TrimSpace(req.DetailAddress),
		CreatedAt:     s.now(),
	}

	return s.updateAddressBook(ctx, owner, func(book *model.AddressBook) {
		book.Addresses = append(book.Addresses, addr)
		if book.DefaultAddressID == nil || req.IsDefault {
			id := addr.ID
			book.DefaultAddressID = &id
		}
	})
}

// SetDefaultAddress делает адрес адресом по умолчанию. Неизвестный адрес игнорируется.
func (s *Service) SetDefaultAddress(ctx context.Context, owner, addressID string) (*model.AddressBook, error) {
	return s.updateAddressBook(ctx, owner, func(book *model.AddressBook) {
		for _, a := range book.Addresses {
			if a.ID == addressID {
				id := addressID
				book.DefaultAddressID = &id
				return
			}
		}
	})
}

// RemoveAddress удаляет адрес. Если он был адресом по умолчанию, им становится
// первый из оставшихся.
func (s *Service) RemoveAddress(ctx context.Context, owner, addressID string) (*model.AddressBook, error) {
	return s.updateAddressBook(ctx, owner, func(book *model.AddressBook) {
		kept := book.Addresses[:0]
		for _, a := range book.Addresses {
			if a.ID != addressID {
				kept = append(kept, a)
			}
		}
		book.Addresses = kept

		if book.DefaultAddressID != nil && *book.DefaultAddressID == addressID {
			book.DefaultAddressID = nil
			if len(kept) > 0 {
				id := kept[0].ID
				book.DefaultAddressID = &id
			}
		}
	})
}

// ClearAddresses очищает адресную книгу.
func (s *Service) ClearAddresses(ctx context.Context, owner string) (*model.AddressBook, error) {
	return s.updateAddressBook(ctx, owner, func(book *model.AddressBook) {
		book.Addresses = []model.Address{}
		book.DefaultAddressID = nil
	})
}

func emptyProfile() model.Profile { return model.Profile{} }

// Profile возвращает профиль устройства.
func (s *Service) Profile(ctx context.Context, owner string) (*model.Profile, error) {
	p, err := load(ctx, s, owner, KeyProfile, emptyProfile)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile обновляет переданные поля профиля.
func (s *Service) SaveProfile(ctx context.Context, owner string, upd model.ProfileUpdate) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := load(ctx, s, owner, KeyProfile, emptyProfile)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	apply(&p.Email, upd.Email)
	apply(&p.Name, upd.Name)
	apply(&p.Nickname, upd.Nickname)
	apply(&p.PhoneNumber, upd.PhoneNumber)

	if err := s.save(ctx, owner, KeyProfile, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ResetProfile возвращает профиль к пустым значениям.
func (s *Service) ResetProfile(ctx context.Context, owner string) (*model.Profile, error) {
	if err := s.store.Delete(ctx, owner, KeyProfile); err != nil {
		return nil, err
	}
	p := emptyProfile()
	return &p, nil
}

func (s *Service) initialNotifications() model.NotificationLog {
	return model.NotificationLog{
		Settings: model.NotificationSettings{
			OrderUpdates:    true,
			ReviewReminders: true,
			Marketing:       false,
		},
		Notifications: []model.Notification{
			{
				ID:          welcomeNotificationID,
				Title:       "알림함 준비 완료",
				Description: "주문/리뷰 흐름에서 발생한 알림을 여기서 확인할 수 있습니다.",
				Type:        model.NotificationGeneral,
				CreatedAt:   s.now(),
			},
		},
	}
}

// Notifications возвращает настройки и журнал уведомлений.
func (s *Service) Notifications(ctx context.Context, owner string) (*model.NotificationLog, error) {
	log, err := load(ctx, s, owner, KeyNotifications, s.initialNotifications)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *Service) updateNotifications(ctx context.Context, owner string, fn func(*model.NotificationLog)) (*model.NotificationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := load(ctx, s, owner, KeyNotifications, s.initialNotifications)
	if err != nil {
		return nil, err
	}
	fn(&log)
	if log.Notifications == nil {
		log.Notifications = []model.Notification{}
	}
	if err := s.save(ctx, owner, KeyNotifications, log); err != nil {
		return nil, err
	}
	return &log, nil
}

// PushNotification добавляет уведомление в начало журнала, если его тип включён
// в настройках. Журнал ограничен notificationLimit элементами.
func (s *Service) PushNotification(ctx context.Context, owner string, req model.PushNotificationRequest) (*model.NotificationLog, error) {
	typ := strings.TrimSpace(req.Type)
	if typ == "" {
		typ = model.NotificationGeneral
	}
	item := model.Notification{
		ID:        "noti-" + s.newID(),
		Title:     defaultNotification,
		Type:      typ,
		CreatedAt: s.now(),
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}

	return s.updateNotifications(ctx, owner, func(log *model.NotificationLog) {
		if !enabled(log.Settings, typ) {
			return
		}
		log.Notifications = append([]model.Notification{item}, log.Notifications...)
		if len(log.Notifications) > notificationLimit {
			log.Notifications = log.Notifications[:notificationLimit]
		}
	})
}

func enabled(settings model.NotificationSettings, typ string) bool {
	switch typ {
	case model.NotificationOrder:
		return settings.OrderUpdates
	case model.NotificationReview:
		return settings.ReviewReminders
	case model.NotificationMarketing:
		return settings.Marketing
	}
	return true
}

// UpdateNotificationSettings меняет переданные настройки уведомлений.
func (s *Service) UpdateNotificationSettings(ctx context.Context, owner string, upd model.NotificationSettingsUpdate) (*model.NotificationLog, error) {
	return s.updateNotifications(ctx, owner, func(log *model.NotificationLog) {
		if upd.OrderUpdates != nil {
			log.Settings.OrderUpdates = *upd.OrderUpdates
		}
		if upd.ReviewReminders != nil {
			log.Settings.ReviewReminders = *upd.ReviewReminders
		}
		if upd.Marketing != nil {
			log.Settings.Marketing = *upd.Marketing
		}
	})
}

// MarkNotificationRead отмечает уведомление прочитанным.
func (s *Service) MarkNotificationRead(ctx context.Context, owner, id string) (*model.NotificationLog, error) {
	return s.updateNotifications(ctx, owner, func(log *model.NotificationLog) {
		for i := range log.Notifications {
			if log.Notifications[i].ID == id {
				log.Notifications[i].IsRead = true
			}
		}
	})
}

// MarkAllNotificationsRead отмечает все уведомления прочитанными.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, owner string) (*model.NotificationLog, error) {
	return s.updateNotifications(ctx, owner, func(log *model.NotificationLog) {
		for i := range log.Notifications {
			log.Notifications[i].IsRead = true
		}
	})
}

// ClearNotifications очищает журнал, настройки сохраняются.
func (s *Service) ClearNotifications(ctx context.Context, owner string) (*model.NotificationLog, error) {
	return s.updateNotifications(ctx, owner, func(log *model.NotificationLog) {
		log.Notifications = []model.Notification{}
	})
}
