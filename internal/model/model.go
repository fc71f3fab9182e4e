// Package model содержит доменные сущности клиентского шлюза доставки еды.
package model

import (
	"encoding/json"
	"time"
)

// Money описывает денежную сумму в минимальных единицах валюты.
type Money struct {
	Amount int64 `json:"amount"`
}

// StoreRef ссылка меню на магазин-владельца.
type StoreRef struct {
	ID int64 `json:"id"`
}

// Option описывает вариант внутри группы опций меню. Цена может быть отрицательной.
type Option struct {
	Name        string `json:"name"`
	OptionPrice Money  `json:"optionPrice"`
}

// OptionGroup описывает группу опций меню.
type OptionGroup struct {
	ID                 string   `json:"id"`
	GroupName          string   `json:"groupName"`
	MaxSelectableCount *int     `json:"maxSelectableCount,omitempty"`
	Options            []Option `json:"options"`
}

// Menu описывает позицию меню магазина.
type Menu struct {
	ID               int64         `json:"id"`
	StoreID          int64         `json:"storeId"`
	Store            StoreRef      `json:"store"`
	MenuName         string        `json:"menuName"`
	MenuDescription  string        `json:"menuDescription"`
	Price            Money         `json:"price"`
	MenuOptionGroups []OptionGroup `json:"menuOptionGroups"`
}

// PhotoReview краткое представление отзыва с фотографией для карточки магазина.
type PhotoReview struct {
	ThumbnailImages    string `json:"thumbnailImages"`
	StoreReviewComment string `json:"storeReviewComment"`
	Rating             int    `json:"rating"`
}

// Store описывает магазин вместе с производными агрегатами отзывов.
type Store struct {
	ID                 int64         `json:"id"`
	StorePublicID      string        `json:"storePublicId"`
	StoreName          string        `json:"storeName"`
	StoreCategory      string        `json:"storeCategory"`
	ThumbnailURL       string        `json:"thumbnailUrl"`
	MinimumOrderAmount Money         `json:"minimumOrderAmount"`
	DeliveryFee        Money         `json:"deliveryFee"`
	TotalRating        float64       `json:"totalRating"`
	ReviewCount        int           `json:"reviewCount"`
	Menus              []Menu        `json:"menus"`
	RecentPhotoReviews []PhotoReview `json:"recentPhotoReviews"`
	DeliveryTimeMin    int           `json:"deliveryTimeMin,omitempty"`
}

// StoreSummary описывает магазин в результатах поиска.
type StoreSummary struct {
	StorePublicID      string  `json:"storePublicId" yaml:"storePublicId"`
	StoreName          string  `json:"storeName" yaml:"storeName"`
	Description        string  `json:"description" yaml:"description"`
	StoreCategory      string  `json:"storeCategory" yaml:"storeCategory"`
	ThumbnailURL       string  `json:"thumbnailUrl" yaml:"thumbnailUrl"`
	TotalRating        float64 `json:"totalRating" yaml:"totalRating"`
	ReviewCount        int     `json:"reviewCount" yaml:"reviewCount"`
	DeliveryFee        Money   `json:"deliveryFee" yaml:"deliveryFee"`
	MinimumOrderAmount Money   `json:"minimumOrderAmount" yaml:"minimumOrderAmount"`
	DeliveryTimeMin    int     `json:"deliveryTimeMin" yaml:"deliveryTimeMin"`
}

// SearchResult страница результатов поиска. TotalCount считается до пагинации.
type SearchResult struct {
	Stores     []StoreSummary `json:"stores"`
	TotalCount int            `json:"totalCount"`
}

// StoreReview отзыв в списке отзывов магазина.
type StoreReview struct {
	PublicID           string    `json:"publicId"`
	StorePublicID      string    `json:"storePublicId"`
	StoreName          string    `json:"storeName"`
	Rating             int       `json:"rating"`
	CreatedAt          time.Time `json:"createdAt"`
	StoreReviewComment string    `json:"storeReviewComment"`
	StoreReviewImages  []string  `json:"storeReviewImages"`
}

// MyReview тот же отзыв в списке «мои отзывы».
type MyReview struct {
	PublicStoreReviewID string    `json:"publicStoreReviewId"`
	StorePublicID       string    `json:"storePublicId"`
	StoreName           string    `json:"storeName"`
	Rating              int       `json:"rating"`
	CreatedAt           time.Time `json:"createdAt"`
	StoreReviewComment  string    `json:"storeReviewComment"`
	OrderMenuImages     []string  `json:"orderMenuImages"`
}

// ReviewComment обёртка комментария в детальном представлении отзыва.
type ReviewComment struct {
	Comment string `json:"comment"`
}

// ReviewDetail детальное представление отзыва.
type ReviewDetail struct {
	PublicID           string        `json:"publicId"`
	StorePublicID      string        `json:"storePublicId"`
	Rating             int           `json:"rating"`
	CreatedAt          time.Time     `json:"createdAt"`
	StoreReviewComment ReviewComment `json:"storeReviewComment"`
	StoreReviewImages  []string      `json:"storeReviewImages"`
	OrderMenuImages    []string      `json:"orderMenuImages"`
}

// PaymentStatus описывает статус платежа.
type PaymentStatus string

const (
	PaymentStatusReady     PaymentStatus = "READY"
	PaymentStatusRequested PaymentStatus = "REQUESTED"
	PaymentStatusApproved  PaymentStatus = "APPROVED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCanceled  PaymentStatus = "CANCELED"
)

// Valid сообщает, входит ли статус в фиксированный набор.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusReady, PaymentStatusRequested, PaymentStatusApproved,
		PaymentStatusFailed, PaymentStatusCanceled:
		return true
	}
	return false
}

// OrderMenu строка заказа.
type OrderMenu struct {
	MenuName string `json:"menuName" yaml:"menuName"`
	Quantity int64  `json:"quantity" yaml:"quantity"`
	Price    int64  `json:"price" yaml:"price"`
}

// Payment описывает платёж вместе с заказом, к которому он относится.
type Payment struct {
	PaymentID          int64         `json:"paymentId"`
	OrderID            int64         `json:"orderId"`
	UserID             int64         `json:"userId"`
	StoreName          string        `json:"storeName"`
	PaymentStatus      PaymentStatus `json:"paymentStatus"`
	Status             PaymentStatus `json:"status"`
	Amount             int64         `json:"amount"`
	PaymentKey         string        `json:"paymentKey"`
	TransactionID      *string       `json:"transactionId"`
	CreatedAt          time.Time     `json:"createdAt"`
	OrderMenus         []OrderMenu   `json:"orderMenus"`
	StoreImages        []string      `json:"storeImages"`
	Rating             *int          `json:"rating,omitempty"`
	StoreReviewComment string        `json:"storeReviewComment,omitempty"`
}

// PaymentDetail ответ на запрос деталей платежа.
type PaymentDetail struct {
	PaymentID     int64         `json:"paymentId"`
	OrderID       *int64        `json:"orderId"`
	UserID        int64         `json:"userId"`
	Amount        int64         `json:"amount"`
	PaymentKey    string        `json:"paymentKey"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	TransactionID *string       `json:"transactionId,omitempty"`
}

// PaymentStatusResult ответ на смену статуса платежа.
type PaymentStatusResult struct {
	PaymentID     int64         `json:"paymentId"`
	Status        PaymentStatus `json:"status"`
	TransactionID *string       `json:"transactionId,omitempty"`
}

// CreateStoreRequest запрос на создание магазина.
type CreateStoreRequest struct {
	StoreName          string `json:"storeName" validate:"max=100"`
	StoreCategory      string `json:"storeCategory,omitempty"`
	ThumbnailURL       string `json:"thumbnailUrl,omitempty"`
	MinimumOrderAmount *Money `json:"minimumOrderAmount,omitempty"`
	DeliveryFee        *Money `json:"deliveryFee,omitempty"`
}

// CreateStoreResult ответ на создание магазина.
type CreateStoreResult struct {
	StorePublicID      string  `json:"storePublicId"`
	StoreName          string  `json:"storeName"`
	StoreCategory      string  `json:"storeCategory"`
	ThumbnailURL       string  `json:"thumbnailUrl"`
	MinimumOrderAmount Money   `json:"minimumOrderAmount"`
	DeliveryFee        Money   `json:"deliveryFee"`
	ReviewCount        int     `json:"reviewCount"`
	TotalRating        float64 `json:"totalRating"`
}

// CreateStoreReviewRequest запрос на создание отзыва. Поля комментария и
// изображений принимаются в нескольких формах и разбираются в mock.ParseComment
// и mock.ParseImages.
type CreateStoreReviewRequest struct {
	Rating             json.RawMessage `json:"rating,omitempty"`
	StoreReviewComment json.RawMessage `json:"storeReviewComment,omitempty"`
	StoreReviewImages  json.RawMessage `json:"storeReviewImages,omitempty"`
}

// CreateStoreReviewResult ответ на создание отзыва.
type CreateStoreReviewResult struct {
	PublicID      string    `json:"publicId"`
	StorePublicID string    `json:"storePublicId"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DeleteReviewResult ответ на удаление отзыва.
type DeleteReviewResult struct {
	Deleted             bool   `json:"deleted"`
	PublicStoreReviewID string `json:"publicStoreReviewId"`
}

// OrderMenuRequest строка заказа во входном запросе.
type OrderMenuRequest struct {
	MenuName  string `json:"menuName"`
	MenuPrice int64  `json:"menuPrice" validate:"gte=0"`
	Quantity  int64  `json:"quantity" validate:"gte=0"`
}

// CreateOrderRequest запрос на создание заказа.
type CreateOrderRequest struct {
	StoreID int64              `json:"storeId" validate:"gte=0"`
	Menus   []OrderMenuRequest `json:"menus" validate:"required,min=1,dive"`
}

// CreateOrderResult ответ на создание заказа.
type CreateOrderResult struct {
	OrderID       int64         `json:"orderId"`
	PaymentID     int64         `json:"paymentId"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Amount        int64         `json:"amount"`
}

// AssignRiderRequest запрос на назначение курьера.
type AssignRiderRequest struct {
	OrderID int64 `json:"orderId" validate:"gt=0"`
}

// AssignRiderResult ответ на назначение курьера.
type AssignRiderResult struct {
	OrderID  *int64 `json:"orderId"`
	RiderID  int64  `json:"riderId"`
	Assigned bool   `json:"assigned"`
}

// CreatePaymentRequest запрос на создание платежа.
type CreatePaymentRequest struct {
	OrderID    int64  `json:"orderId" validate:"gte=0"`
	Amount     int64  `json:"amount" validate:"gte=0"`
	PaymentKey string `json:"paymentKey,omitempty"`
}

// ApprovePaymentRequest запрос на подтверждение платежа.
type ApprovePaymentRequest struct {
	TransactionID string `json:"transactionId,omitempty"`
}

// SearchQuery параметры поиска магазинов.
type SearchQuery struct {
	Keyword    string
	CategoryID int64
	Page       int
	Size       int
}
