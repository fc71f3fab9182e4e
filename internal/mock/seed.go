package mock

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/mmeshcher/baedariyo/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

type seedStore struct {
	ID            int64  `yaml:"id"`
	StorePublicID string `yaml:"storePublicId"`
	StoreName     string `yaml:"storeName"`
}

type seedReview struct {
	PublicID  string   `yaml:"publicId"`
	Rating    int      `yaml:"rating"`
	CreatedAt string   `yaml:"createdAt"`
	Comment   string   `yaml:"comment"`
	Images    []string `yaml:"images"`
}

type seedPayment struct {
	PaymentID          int64             `yaml:"paymentId"`
	OrderID            int64             `yaml:"orderId"`
	Status             string            `yaml:"status"`
	Amount             int64             `yaml:"amount"`
	PaymentKey         string            `yaml:"paymentKey"`
	CreatedAt          string            `yaml:"createdAt"`
	OrderMenus         []model.OrderMenu `yaml:"orderMenus"`
	Rating             *int              `yaml:"rating"`
	StoreReviewComment string            `yaml:"storeReviewComment"`
}

type seedData struct {
	DefaultStore  seedStore            `yaml:"defaultStore"`
	Reviews       []seedReview         `yaml:"reviews"`
	Payments      []seedPayment        `yaml:"payments"`
	SearchStores  []model.StoreSummary `yaml:"searchStores"`
	SearchHistory []string             `yaml:"searchHistory"`
}

func loadSeed() (*seedData, error) {
	var data seedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

func (s *State) applySeed(data *seedData) error {
	def := BuildStore(StoreInput{
		ID:            data.DefaultStore.ID,
		StorePublicID: data.DefaultStore.StorePublicID,
		StoreName:     data.DefaultStore.StoreName,
		Menus:         BuildDefaultMenus(data.DefaultStore.ID, 1),
	})
	s.registerStore(def)

	// Магазины из подборки поиска регистрируются, чтобы переход из поиска
	// открывал заполненную карточку.
	for _, summary := range data.SearchStores {
		id, menus := s.allocateStore()
		minOrder := summary.MinimumOrderAmount
		fee := summary.DeliveryFee
		st := BuildStore(StoreInput{
			ID:                 id,
			StorePublicID:      summary.StorePublicID,
			StoreName:          summary.StoreName,
			StoreCategory:      summary.StoreCategory,
			ThumbnailURL:       summary.ThumbnailURL,
			MinimumOrderAmount: &minOrder,
			DeliveryFee:        &fee,
			Menus:              menus,
		})
		st.DeliveryTimeMin = summary.DeliveryTimeMin
		s.registerStore(st)
	}
	s.searchStores = data.SearchStores
	s.searchHistory = data.SearchHistory

	reviews := make([]model.StoreReview, 0, len(data.Reviews))
	for _, r := range data.Reviews {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("parse seed review %s: %w", r.PublicID, err)
		}
		reviews = append(reviews, BuildStoreReview(ReviewInput{
			PublicID:      r.PublicID,
			StorePublicID: def.StorePublicID,
			StoreName:     def.StoreName,
			Rating:        r.Rating,
			CreatedAt:     createdAt,
			Comment:       r.Comment,
			Images:        r.Images,
		}))
	}
	s.reviewsByStore[def.StorePublicID] = reviews
	for _, r := range reviews {
		s.myReviews = append(s.myReviews, BuildMyReview(r))
	}

	for _, p := range data.Payments {
		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("parse seed payment %d: %w", p.PaymentID, err)
		}
		status := model.PaymentStatus(p.Status)
		if !status.Valid() {
			return fmt.Errorf("seed payment %d: unknown status %q", p.PaymentID, p.Status)
		}
		s.payments = append(s.payments, BuildPayment(PaymentInput{
			PaymentID:          p.PaymentID,
			OrderID:            p.OrderID,
			StoreName:          def.StoreName,
			Status:             status,
			Amount:             p.Amount,
			PaymentKey:         p.PaymentKey,
			CreatedAt:          createdAt,
			OrderMenus:         p.OrderMenus,
			StoreImages:        []string{def.ThumbnailURL},
			Rating:             p.Rating,
			StoreReviewComment: p.StoreReviewComment,
		}))
	}

	return nil
}
