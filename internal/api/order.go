package api

import (
	"context"
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// CreateOrder создаёт заказ пользователя.
func (c *Client) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	return call(ctx, c, "createOrder", http.MethodPost, "/api/orders/users/create", nil, req,
		func() (*model.CreateOrderResult, error) { return c.mock.CreateOrder(req) })
}

// AssignRiderToOrder назначает курьера на заказ.
func (c *Client) AssignRiderToOrder(ctx context.Context, req model.AssignRiderRequest) (*model.AssignRiderResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	return call(ctx, c, "assignRiderToOrder", http.MethodPost, "/api/orders/rider/assign", nil, req,
		func() (*model.AssignRiderResult, error) { return c.mock.AssignRiderToOrder(req) })
}
