package mock

import (
	"fmt"
	"strings"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// CreateStore регистрирует новый магазин с меню по умолчанию.
func (s *State) CreateStore(req model.CreateStoreRequest) (*model.CreateStoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, menus := s.allocateStore()
	name := strings.TrimSpace(req.StoreName)
	if name == "" {
		name = fmt.Sprintf("Mock 가게 %d", id)
	}

	st := BuildStore(StoreInput{
		ID:                 id,
		StorePublicID:      s.newID(),
		StoreName:          name,
		StoreCategory:      strings.TrimSpace(req.StoreCategory),
		ThumbnailURL:       strings.TrimSpace(req.ThumbnailURL),
		MinimumOrderAmount: req.MinimumOrderAmount,
		DeliveryFee:        req.DeliveryFee,
		Menus:              menus,
	})
	s.registerStore(st)
	s.recalculate(st.StorePublicID)

	return &model.CreateStoreResult{
		StorePublicID:      st.StorePublicID,
		StoreName:          st.StoreName,
		StoreCategory:      st.StoreCategory,
		ThumbnailURL:       st.ThumbnailURL,
		MinimumOrderAmount: st.MinimumOrderAmount,
		DeliveryFee:        st.DeliveryFee,
		ReviewCount:        st.ReviewCount,
		TotalRating:        st.TotalRating,
	}, nil
}

// GetStoreDetail возвращает магазин с актуальными агрегатами отзывов.
func (s *State) GetStoreDetail(storePublicID string) (*model.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.ensureStore(storePublicID)
	if err != nil {
		return nil, err
	}
	s.recalculate(st.StorePublicID)
	return st.Clone(), nil
}

// GetStoreMenus возвращает меню магазина.
func (s *State) GetStoreMenus(storePublicID string) ([]model.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.ensureStore(storePublicID)
	if err != nil {
		return nil, err
	}
	return model.CloneMenus(st.Menus), nil
}

// GetStoreReviews возвращает отзывы магазина, новые первыми.
func (s *State) GetStoreReviews(storePublicID string) ([]model.StoreReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.ensureStore(storePublicID)
	if err != nil {
		return nil, err
	}
	reviews := s.reviewsOf(st.StorePublicID)
	out := make([]model.StoreReview, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.Clone())
	}
	return out, nil
}
