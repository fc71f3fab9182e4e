package mock

import (
	"strings"

	"github.com/mmeshcher/baedariyo/internal/model"
)

const syntheticReviewComment = "mock 리뷰 데이터입니다."

// CreateStoreReview добавляет отзыв в начало списка магазина и списка
// «мои отзывы», после чего пересчитывает агрегаты магазина.
func (s *State) CreateStoreReview(storePublicID string, req model.CreateStoreReviewRequest) (*model.CreateStoreReviewResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.ensureStore(storePublicID)
	if err != nil {
		return nil, err
	}

	review := BuildStoreReview(ReviewInput{
		PublicID:      s.newID(),
		StorePublicID: st.StorePublicID,
		StoreName:     st.StoreName,
		Rating:        ParseRating(req.Rating),
		CreatedAt:     s.now(),
		Comment:       ParseComment(req.StoreReviewComment).Text,
		Images:        ParseImages(req.StoreReviewImages).URLs,
	})

	reviews := s.reviewsOf(st.StorePublicID)
	s.reviewsByStore[st.StorePublicID] = append([]model.StoreReview{review}, reviews...)
	s.myReviews = append([]model.MyReview{BuildMyReview(review)}, s.myReviews...)
	s.recalculate(st.StorePublicID)

	return &model.CreateStoreReviewResult{
		PublicID:      review.PublicID,
		StorePublicID: review.StorePublicID,
		Rating:        review.Rating,
		CreatedAt:     review.CreatedAt,
	}, nil
}

// GetMyReviews возвращает отзывы мок-пользователя, новые первыми.
func (s *State) GetMyReviews() ([]model.MyReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.MyReview, 0, len(s.myReviews))
	for _, r := range s.myReviews {
		out = append(out, r.Clone())
	}
	return out, nil
}

// GetReviewDetail ищет отзыв среди отзывов магазинов, затем среди «моих
// отзывов». Для неизвестного идентификатора возвращается синтетический отзыв.
func (s *State) GetReviewDetail(publicID string) (*model.ReviewDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(publicID)

	for _, reviews := range s.reviewsByStore {
		for _, r := range reviews {
			if r.PublicID != id {
				continue
			}
			detail := model.ReviewDetail{
				PublicID:           r.PublicID,
				StorePublicID:      r.StorePublicID,
				Rating:             r.Rating,
				CreatedAt:          r.CreatedAt,
				StoreReviewComment: model.ReviewComment{Comment: r.StoreReviewComment},
				StoreReviewImages:  r.StoreReviewImages,
				OrderMenuImages:    r.StoreReviewImages,
			}
			detail = detail.Clone()
			return &detail, nil
		}
	}

	for _, r := range s.myReviews {
		if r.PublicStoreReviewID != id {
			continue
		}
		detail := model.ReviewDetail{
			PublicID:           r.PublicStoreReviewID,
			StorePublicID:      r.StorePublicID,
			Rating:             r.Rating,
			CreatedAt:          r.CreatedAt,
			StoreReviewComment: model.ReviewComment{Comment: r.StoreReviewComment},
			StoreReviewImages:  r.OrderMenuImages,
			OrderMenuImages:    r.OrderMenuImages,
		}
		detail = detail.Clone()
		return &detail, nil
	}

	return &model.ReviewDetail{
		PublicID:           id,
		StorePublicID:      DefaultStorePublicID,
		Rating:             0,
		CreatedAt:          s.now(),
		StoreReviewComment: model.ReviewComment{Comment: syntheticReviewComment},
		StoreReviewImages:  []string{},
		OrderMenuImages:    []string{},
	}, nil
}

// DeleteMyReview удаляет отзыв из «моих отзывов» и из списков всех магазинов.
// Повторное удаление не является ошибкой.
func (s *State) DeleteMyReview(publicID string) (*model.DeleteReviewResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(publicID)

	kept := s.myReviews[:0]
	for _, r := range s.myReviews {
		if r.PublicStoreReviewID != id {
			kept = append(kept, r)
		}
	}
	s.myReviews = kept

	for storeID, reviews := range s.reviewsByStore {
		filtered := make([]model.StoreReview, 0, len(reviews))
		for _, r := range reviews {
			if r.PublicID != id {
				filtered = append(filtered, r)
			}
		}
		s.reviewsByStore[storeID] = filtered
	}
	s.recalculateAll()

	return &model.DeleteReviewResult{Deleted: true, PublicStoreReviewID: id}, nil
}
