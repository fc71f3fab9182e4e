package api

import (
	"context"
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// CreateStore создаёт магазин.
func (c *Client) CreateStore(ctx context.Context, req model.CreateStoreRequest) (*model.CreateStoreResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	return call(ctx, c, "createStore", http.MethodPost, "/api/stores", nil, req,
		func() (*model.CreateStoreResult, error) { return c.mock.CreateStore(req) })
}

// GetStoreDetail возвращает карточку магазина.
func (c *Client) GetStoreDetail(ctx context.Context, storePublicID string) (*model.Store, error) {
	if err := c.validate.PublicID("storePublicId", storePublicID); err != nil {
		return nil, err
	}
	return call(ctx, c, "getStoreDetail", http.MethodGet, "/api/stores/"+segment(storePublicID), nil, nil,
		func() (*model.Store, error) { return c.mock.GetStoreDetail(storePublicID) })
}

// GetStoreMenus возвращает меню магазина.
func (c *Client) GetStoreMenus(ctx context.Context, storePublicID string) ([]model.Menu, error) {
	if err := c.validate.PublicID("storePublicId", storePublicID); err != nil {
		return nil, err
	}
	return call(ctx, c, "getStoreMenus", http.MethodGet, "/api/stores/"+segment(storePublicID)+"/menus", nil, nil,
		func() ([]model.Menu, error) { return c.mock.GetStoreMenus(storePublicID) })
}

// GetStoreReviews возвращает отзывы магазина.
func (c *Client) GetStoreReviews(ctx context.Context, storePublicID string) ([]model.StoreReview, error) {
	if err := c.validate.PublicID("storePublicId", storePublicID); err != nil {
		return nil, err
	}
	return call(ctx, c, "getStoreReviews", http.MethodGet, "/api/stores/"+segment(storePublicID)+"/reviews", nil, nil,
		func() ([]model.StoreReview, error) { return c.mock.GetStoreReviews(storePublicID) })
}
