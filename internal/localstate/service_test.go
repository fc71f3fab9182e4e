package localstate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/baedariyo/internal/model"
)

const device = "device-1"

func newTestService(t *testing.T) *Service {
	t.Helper()

	n := 0
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return NewService(NewMemoryStore(),
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("%d", n)
		}),
	)
}

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestCartItemKey(t *testing.T) {
	a := []model.SelectedOption{
		{GroupID: "g2", OptionName: "치즈", OptionPriceAmount: 500},
		{GroupID: "g1", OptionName: "콜라", OptionPriceAmount: 2000},
	}
	b := []model.SelectedOption{a[1], a[0]}

	assert.Equal(t, CartItemKey("s", "10", a), CartItemKey("s", "10", b))
	assert.Equal(t, "s:10:g1:콜라:2000|g2:치즈:500", CartItemKey("s", "10", a))
	assert.Equal(t, "s:10:", CartItemKey("s", "10", nil))
}

func TestCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	empty, err := svc.Cart(ctx, device)
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	req := model.AddCartItemRequest{StorePublicID: "s", MenuID: "1", MenuName: "치킨", BasePriceAmount: 18000}
	_, err = svc.AddCartItem(ctx, device, req)
	require.NoError(t, err)

	req.Quantity = 2
	cart, err := svc.AddCartItem(ctx, device, req)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(3), cart.Items[0].Quantity)

	key := cart.Items[0].ItemKey
	cart, err = svc.IncrementCartItem(ctx, device, key)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cart.Items[0].Quantity)

	for i := 0; i < 3; i++ {
		_, err = svc.DecrementCartItem(ctx, device, key)
		require.NoError(t, err)
	}
	cart, err = svc.DecrementCartItem(ctx, device, key)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.AddCartItem(ctx, device, req)
	require.NoError(t, err)
	cart, err = svc.RemoveCartItem(ctx, device, key)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.AddCartItem(ctx, device, req)
	require.NoError(t, err)
	cart, err = svc.ClearCart(ctx, device)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	other, err := svc.Cart(ctx, "device-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestAddressBook(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	book, err := svc.AddAddress(ctx, device, model.AddAddressRequest{RoadAddress: " 서울 구로구 "})
	require.NoError(t, err)
	require.Len(t, book.Addresses, 1)
	first := book.Addresses[0]
	assert.Equal(t, "기본 주소", first.Label)
	assert.Equal(t, "서울 구로구", first.RoadAddress)
	require.NotNil(t, book.DefaultAddressID)
	assert.Equal(t, first.ID, *book.DefaultAddressID)

	book, err = svc.AddAddress(ctx, device, model.AddAddressRequest{Label: "회사"})
	require.NoError(t, err)
	second := book.Addresses[1]
	assert.Equal(t, first.ID, *book.DefaultAddressID)

	book, err = svc.SetDefaultAddress(ctx, device, "missing")
	require.NoError(t, err)
	assert.Equal(t, first.ID, *book.DefaultAddressID)

	book, err = svc.AddAddress(ctx, device, model.AddAddressRequest{Label: "집", IsDefault: true})
	require.NoError(t, err)
	third := book.Addresses[2]
	assert.Equal(t, third.ID, *book.DefaultAddressID)

	book, err = svc.RemoveAddress(ctx, device, third.ID)
	require.NoError(t, err)
	require.NotNil(t, book.DefaultAddressID)
	assert.Equal(t, first.ID, *book.DefaultAddressID)

	book, err = svc.SetDefaultAddress(ctx, device, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *book.DefaultAddressID)

	book, err = svc.ClearAddresses(ctx, device)
	require.NoError(t, err)
	assert.Empty(t, book.Addresses)
	assert.Nil(t, book.DefaultAddressID)
}

func TestProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.SaveProfile(ctx, device, model.ProfileUpdate{Email: strPtr(" a@b.c "), Nickname: strPtr("닉")})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", p.Email)

	p, err = svc.SaveProfile(ctx, device, model.ProfileUpdate{Name: strPtr("홍길동")})
	require.NoError(t, err)
	assert.Equal(t, model.Profile{Email: "a@b.c", Name: "홍길동", Nickname: "닉"}, *p)

	p, err = svc.ResetProfile(ctx, device)
	require.NoError(t, err)
	assert.Equal(t, model.Profile{}, *p)

	loaded, err := svc.Profile(ctx, device)
	require.NoError(t, err)
	assert.Equal(t, model.Profile{}, *loaded)
}

func TestNotifications(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	log, err := svc.Notifications(ctx, device)
	require.NoError(t, err)
	require.Len(t, log.Notifications, 1)
	assert.Equal(t, "welcome-notification", log.Notifications[0].ID)
	assert.True(t, log.Settings.OrderUpdates)
	assert.False(t, log.Settings.Marketing)

	log, err = svc.PushNotification(ctx, device, model.PushNotificationRequest{Type: model.NotificationMarketing, Title: strPtr("할인")})
	require.NoError(t, err)
	assert.Len(t, log.Notifications, 1, "marketing is disabled by default")

	log, err = svc.PushNotification(ctx, device, model.PushNotificationRequest{Type: model.NotificationOrder})
	require.NoError(t, err)
	require.Len(t, log.Notifications, 2)
	assert.Equal(t, "알림", log.Notifications[0].Title)
	assert.Equal(t, model.NotificationOrder, log.Notifications[0].Type)

	_, err = svc.UpdateNotificationSettings(ctx, device, model.NotificationSettingsUpdate{OrderUpdates: boolPtr(false), Marketing: boolPtr(true)})
	require.NoError(t, err)
	log, err = svc.PushNotification(ctx, device, model.PushNotificationRequest{Type: model.NotificationOrder})
	require.NoError(t, err)
	assert.Len(t, log.Notifications, 2)
	assert.True(t, log.Settings.ReviewReminders)

	log, err = svc.MarkNotificationRead(ctx, device, "welcome-notification")
	require.NoError(t, err)
	assert.True(t, log.Notifications[1].IsRead)
	assert.False(t, log.Notifications[0].IsRead)

	log, err = svc.MarkAllNotificationsRead(ctx, device)
	require.NoError(t, err)
	for _, n := range log.Notifications {
		assert.True(t, n.IsRead)
	}

	log, err = svc.ClearNotifications(ctx, device)
	require.NoError(t, err)
	assert.Empty(t, log.Notifications)
	assert.True(t, log.Settings.Marketing)
}

func TestNotificationLimit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var log *model.NotificationLog
	var err error
	for i := 0; i < notificationLimit+5; i++ {
		log, err = svc.PushNotification(ctx, device, model.PushNotificationRequest{Title: strPtr(fmt.Sprintf("n%d", i))})
		require.NoError(t, err)
	}
	require.Len(t, log.Notifications, notificationLimit)
	assert.Equal(t, fmt.Sprintf("n%d", notificationLimit+4), log.Notifications[0].Title)
}

func TestSessionAndResetAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Session(ctx, device)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, svc.SaveSession(ctx, device, model.Session{Role: model.RoleUser, AccessToken: "a", RefreshToken: "r"}))
	sess, err := svc.Session(ctx, device)
	require.NoError(t, err)
	assert.Equal(t, "a", sess.AccessToken)

	_, err = svc.AddCartItem(ctx, device, model.AddCartItemRequest{StorePublicID: "s", MenuID: "1"})
	require.NoError(t, err)
	_, err = svc.SaveProfile(ctx, device, model.ProfileUpdate{Name: strPtr("x")})
	require.NoError(t, err)

	require.NoError(t, svc.ResetAll(ctx, device))

	keys, err := svc.store.Keys(ctx, device)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = svc.Session(ctx, device)
	require.ErrorIs(t, err, ErrNoSession)
	cart, err := svc.Cart(ctx, device)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestMemoryStoreCopies(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	payload := []byte(`{"a":1}`)
	require.NoError(t, m.Save(ctx, device, "k", payload))
	payload[0] = 'x'

	got, err := m.Load(ctx, device, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	_, err = m.Load(ctx, device, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Delete(ctx, device, "missing"))
}
