package api

import (
	"context"
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// CreateStoreReview создаёт отзыв о магазине.
func (c *Client) CreateStoreReview(ctx context.Context, storePublicID string, req model.CreateStoreReviewRequest) (*model.CreateStoreReviewResult, error) {
	if err := c.validate.PublicID("storePublicId", storePublicID); err != nil {
		return nil, err
	}
	return call(ctx, c, "createStoreReview", http.MethodPost, "/api/stores/"+segment(storePublicID)+"/reviews", nil, req,
		func() (*model.CreateStoreReviewResult, error) { return c.mock.CreateStoreReview(storePublicID, req) })
}

// GetMyReviews возвращает отзывы текущего пользователя.
func (c *Client) GetMyReviews(ctx context.Context) ([]model.MyReview, error) {
	return call(ctx, c, "getMyReviews", http.MethodGet, "/api/reviews/me", nil, nil, c.mock.GetMyReviews)
}

// GetReviewDetail возвращает отзыв по публичному идентификатору.
func (c *Client) GetReviewDetail(ctx context.Context, publicID string) (*model.ReviewDetail, error) {
	if err := c.validate.PublicID("publicStoreReviewId", publicID); err != nil {
		return nil, err
	}
	return call(ctx, c, "getReviewDetail", http.MethodGet, "/api/reviews/"+segment(publicID), nil, nil,
		func() (*model.ReviewDetail, error) { return c.mock.GetReviewDetail(publicID) })
}

// DeleteMyReview удаляет отзыв текущего пользователя.
func (c *Client) DeleteMyReview(ctx context.Context, publicID string) (*model.DeleteReviewResult, error) {
	if err := c.validate.PublicID("publicStoreReviewId", publicID); err != nil {
		return nil, err
	}
	res, err := call(ctx, c, "deleteMyReview", http.MethodDelete, "/api/reviews/"+segment(publicID), nil, nil,
		func() (*model.DeleteReviewResult, error) { return c.mock.DeleteMyReview(publicID) })
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &model.DeleteReviewResult{Deleted: true, PublicStoreReviewID: publicID}
	}
	return res, nil
}
