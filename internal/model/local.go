package model

import "time"

// SelectedOption выбранная опция позиции корзины.
type SelectedOption struct {
	GroupID           string `json:"groupId"`
	GroupName         string `json:"groupName"`
	OptionID          string `json:"optionId"`
	OptionName        string `json:"optionName"`
	OptionPriceAmount int64  `json:"optionPriceAmount"`
}

// CartItem позиция корзины. ItemKey однозначно определяется магазином, меню и набором опций.
type CartItem struct {
	ItemKey         string           `json:"itemKey"`
	StorePublicID   string           `json:"storePublicId"`
	StoreID         *int64           `json:"storeId"`
	StoreName       string           `json:"storeName"`
	MenuID          string           `json:"menuId"`
	MenuNumericID   *int64           `json:"menuNumericId"`
	MenuName        string           `json:"menuName"`
	MenuDescription string           `json:"menuDescription"`
	BasePriceAmount int64            `json:"basePriceAmount"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Quantity        int64            `json:"quantity"`
}

// Cart содержимое корзины устройства.
type Cart struct {
	Items []CartItem `json:"items"`
}

// AddCartItemRequest запрос на добавление позиции в корзину.
type AddCartItemRequest struct {
	StorePublicID   string           `json:"storePublicId" validate:"notblank"`
	StoreID         *int64           `json:"storeId,omitempty"`
	StoreName       string           `json:"storeName"`
	MenuID          string           `json:"menuId" validate:"notblank"`
	MenuNumericID   *int64           `json:"menuNumericId,omitempty"`
	MenuName        string           `json:"menuName"`
	MenuDescription string           `json:"menuDescription"`
	BasePriceAmount int64            `json:"basePriceAmount"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Quantity        int64            `json:"quantity"`
}

// Address адрес доставки.
type Address struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	RecipientName string    `json:"recipientName"`
	PhoneNumber   string    `json:"phoneNumber"`
	RoadAddress   string    `json:"roadAddress"`
	JibunAddress  string    `json:"jibunAddress"`
	DetailAddress string    `json:"detailAddress"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AddressBook адресная книга устройства.
type AddressBook struct {
	Addresses        []Address `json:"addresses"`
	DefaultAddressID *string   `json:"defaultAddressId"`
}

// AddAddressRequest запрос на добавление адреса.
type AddAddressRequest struct {
	Label         string `json:"label"`
	RecipientName string `json:"recipientName"`
	PhoneNumber   string `json:"phoneNumber"`
	RoadAddress   string `json:"roadAddress"`
	JibunAddress  string `json:"jibunAddress"`
	DetailAddress string `json:"detailAddress"`
	IsDefault     bool   `json:"isDefault"`
}

// Profile профиль пользователя, сохранённый на устройстве.
type Profile struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	PhoneNumber string `json:"phoneNumber"`
}

// ProfileUpdate частичное обновление профиля: отсутствующие поля не меняются.
type ProfileUpdate struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Nickname    *string `json:"nickname"`
	PhoneNumber *string `json:"phoneNumber"`
}

// Типы уведомлений.
const (
	NotificationGeneral   = "GENERAL"
	NotificationOrder     = "ORDER"
	NotificationReview    = "REVIEW"
	NotificationMarketing = "MARKETING"
)

// NotificationSettings включённые типы уведомлений.
type NotificationSettings struct {
	OrderUpdates    bool `json:"orderUpdates"`
	ReviewReminders bool `json:"reviewReminders"`
	Marketing       bool `json:"marketing"`
}

// NotificationSettingsUpdate частичное обновление настроек уведомлений.
type NotificationSettingsUpdate struct {
	OrderUpdates    *bool `json:"orderUpdates"`
	ReviewReminders *bool `json:"reviewReminders"`
	Marketing       *bool `json:"marketing"`
}

// Notification элемент журнала уведомлений.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NotificationLog настройки и журнал уведомлений устройства.
type NotificationLog struct {
	Settings      NotificationSettings `json:"settings"`
	Notifications []Notification       `json:"notifications"`
}

// PushNotificationRequest запрос на добавление уведомления.
type PushNotificationRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
}

// Session токены, сохранённые для устройства после входа.
type Session struct {
	Role         Role   `json:"role,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
