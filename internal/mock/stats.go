package mock

import (
	"math"

	"github.com/mmeshcher/baedariyo/internal/model"
)

const recentPhotoReviewLimit = 4

// recalculate заново вычисляет рейтинг, число отзывов и превью фото-отзывов
// магазина по текущему списку его отзывов.
func (s *State) recalculate(storePublicID string) {
	st := s.findStore(storePublicID)
	if st == nil {
		return
	}

	reviews := s.reviewsOf(storePublicID)
	st.ReviewCount = len(reviews)
	st.TotalRating = averageRating(reviews)

	photos := make([]model.PhotoReview, 0, recentPhotoReviewLimit)
	for _, r := range reviews {
		if len(r.StoreReviewImages) == 0 {
			continue
		}
		photos = append(photos, model.PhotoReview{
			ThumbnailImages:    r.StoreReviewImages[0],
			StoreReviewComment: r.StoreReviewComment,
			Rating:             r.Rating,
		})
		if len(photos) == recentPhotoReviewLimit {
			break
		}
	}
	st.RecentPhotoReviews = photos
}

func (s *State) recalculateAll() {
	for _, st := range s.stores {
		s.recalculate(st.StorePublicID)
	}
}

// averageRating возвращает среднюю оценку, округлённую до одного знака, или 0.
func averageRating(reviews []model.StoreReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
