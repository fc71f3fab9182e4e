package mock

import (
	"fmt"
	"net/url"
	"time"

	"github.com/mmeshcher/baedariyo/internal/model"
)

const (
	defaultStoreCategory      = "CHICKEN"
	defaultMinimumOrderAmount = 15000
	defaultDeliveryFee        = 3000
)

// StoreInput частично заполненные данные для BuildStore.
type StoreInput struct {
	ID                 int64
	StorePublicID      string
	StoreName          string
	StoreCategory      string
	ThumbnailURL       string
	MinimumOrderAmount *model.Money
	DeliveryFee        *model.Money
	Menus              []model.Menu
}

func intPtr(v int) *int { return &v }

// StoreThumbnailURL возвращает детерминированную заглушку обложки магазина.
func StoreThumbnailURL(storePublicID string) string {
	return fmt.Sprintf("https://picsum.photos/seed/store-%s/800/500", url.PathEscape(storePublicID))
}

// BuildDefaultMenus возвращает три стандартных меню, идентификаторы начинаются со startMenuID.
func BuildDefaultMenus(storeID, startMenuID int64) []model.Menu {
	ref := model.StoreRef{ID: storeID}
	return []model.Menu{
		{
			ID:              startMenuID,
			StoreID:         storeID,
			Store:           ref,
			MenuName:        "후라이드 치킨",
			MenuDescription: "겉바속촉 기본 후라이드",
			Price:           model.Money{Amount: 18000},
			MenuOptionGroups: []model.OptionGroup{
				{
					ID:                 fmt.Sprintf("%d-g1", startMenuID),
					GroupName:          "추가 선택",
					MaxSelectableCount: intPtr(2),
					Options: []model.Option{
						{Name: "콜라 500ml", OptionPrice: model.Money{Amount: 2000}},
						{Name: "치즈볼 5개", OptionPrice: model.Money{Amount: 3500}},
						{Name: "소스 추가", OptionPrice: model.Money{Amount: 500}},
					},
				},
			},
		},
		{
			ID:              startMenuID + 1,
			StoreID:         storeID,
			Store:           ref,
			MenuName:        "양념 치킨",
			MenuDescription: "달콤한 특제 양념소스",
			Price:           model.Money{Amount: 20000},
			MenuOptionGroups: []model.OptionGroup{
				{
					ID:                 fmt.Sprintf("%d-g1", startMenuID+1),
					GroupName:          "맵기 선택",
					MaxSelectableCount: intPtr(1),
					Options: []model.Option{
						{Name: "기본", OptionPrice: model.Money{Amount: 0}},
						{Name: "매운맛", OptionPrice: model.Money{Amount: 500}},
					},
				},
			},
		},
		{
			ID:               startMenuID + 2,
			StoreID:          storeID,
			Store:            ref,
			MenuName:         "감자튀김",
			MenuDescription:  "사이드 메뉴",
			Price:            model.Money{Amount: 4000},
			MenuOptionGroups: []model.OptionGroup{},
		},
	}
}

// BuildStore собирает магазин с применёнными значениями по умолчанию.
// Агрегаты отзывов обнулены, их заполняет пересчёт.
func BuildStore(in StoreInput) *model.Store {
	s := &model.Store{
		ID:                 in.ID,
		StorePublicID:      in.StorePublicID,
		StoreName:          in.StoreName,
		StoreCategory:      in.StoreCategory,
		ThumbnailURL:       in.ThumbnailURL,
		MinimumOrderAmount: model.Money{Amount: defaultMinimumOrderAmount},
		DeliveryFee:        model.Money{Amount: defaultDeliveryFee},
		Menus:              in.Menus,
		RecentPhotoReviews: []model.PhotoReview{},
	}
	if s.StoreCategory == "" {
		s.StoreCategory = defaultStoreCategory
	}
	if s.ThumbnailURL == "" {
		s.ThumbnailURL = StoreThumbnailURL(in.StorePublicID)
	}
	if in.MinimumOrderAmount != nil {
		s.MinimumOrderAmount = *in.MinimumOrderAmount
	}
	if in.DeliveryFee != nil {
		s.DeliveryFee = *in.DeliveryFee
	}
	if s.Menus == nil {
		s.Menus = BuildDefaultMenus(in.ID, 1)
	}
	return s
}

// ReviewInput данные для BuildStoreReview.
type ReviewInput struct {
	PublicID      string
	StorePublicID string
	StoreName     string
	Rating        int
	CreatedAt     time.Time
	Comment       string
	Images        []string
}

// BuildStoreReview собирает отзыв магазина.
func BuildStoreReview(in ReviewInput) model.StoreReview {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	return model.StoreReview{
		PublicID:           in.PublicID,
		StorePublicID:      in.StorePublicID,
		StoreName:          in.StoreName,
		Rating:             in.Rating,
		CreatedAt:          in.CreatedAt,
		StoreReviewComment: in.Comment,
		StoreReviewImages:  images,
	}
}

// BuildMyReview строит представление отзыва для списка «мои отзывы».
func BuildMyReview(r model.StoreReview) model.MyReview {
	images := make([]string, len(r.StoreReviewImages))
	copy(images, r.StoreReviewImages)
	return model.MyReview{
		PublicStoreReviewID: r.PublicID,
		StorePublicID:       r.StorePublicID,
		StoreName:           r.StoreName,
		Rating:              r.Rating,
		CreatedAt:           r.CreatedAt,
		StoreReviewComment:  r.StoreReviewComment,
		OrderMenuImages:     images,
	}
}

// PaymentInput данные для BuildPayment.
type PaymentInput struct {
	PaymentID          int64
	OrderID            int64
	StoreName          string
	Status             model.PaymentStatus
	Amount             int64
	PaymentKey         string
	CreatedAt          time.Time
	OrderMenus         []model.OrderMenu
	StoreImages        []string
	Rating             *int
	StoreReviewComment string
}

// BuildPayment собирает платёж мок-пользователя.
func BuildPayment(in PaymentInput) *model.Payment {
	images := in.StoreImages
	if images == nil {
		images = []string{}
	}
	menus := in.OrderMenus
	if menus == nil {
		menus = []model.OrderMenu{}
	}
	return &model.Payment{
		PaymentID:          in.PaymentID,
		OrderID:            in.OrderID,
		UserID:             MockUserID,
		StoreName:          in.StoreName,
		PaymentStatus:      in.Status,
		Status:             in.Status,
		Amount:             in.Amount,
		PaymentKey:         in.PaymentKey,
		CreatedAt:          in.CreatedAt,
		OrderMenus:         menus,
		StoreImages:        images,
		Rating:             in.Rating,
		StoreReviewComment: in.StoreReviewComment,
	}
}
