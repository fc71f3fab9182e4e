package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmeshcher/baedariyo/internal/model"
)

func paymentPath(paymentID int64) string {
	return "/api/payments/" + strconv.FormatInt(paymentID, 10)
}

// CreatePayment создаёт платёж и возвращает его идентификатор.
func (c *Client) CreatePayment(ctx context.Context, req model.CreatePaymentRequest) (int64, error) {
	if err := c.validate.Struct(req); err != nil {
		return 0, err
	}
	return call(ctx, c, "createPayment", http.MethodPost, "/api/payments", nil, req,
		func() (int64, error) { return c.mock.CreatePayment(req) })
}

// ApprovePayment подтверждает платёж.
func (c *Client) ApprovePayment(ctx context.Context, paymentID int64, req model.ApprovePaymentRequest) (*model.PaymentStatusResult, error) {
	if err := c.validate.PositiveID("paymentId", paymentID); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, err
	}
	return call(ctx, c, "approvePayment", http.MethodPost, paymentPath(paymentID)+"/approve", nil, req,
		func() (*model.PaymentStatusResult, error) { return c.mock.ApprovePayment(paymentID, req.TransactionID) })
}

// FailPayment отмечает платёж как неуспешный.
func (c *Client) FailPayment(ctx context.Context, paymentID int64) (*model.PaymentStatusResult, error) {
	if err := c.validate.PositiveID("paymentId", paymentID); err != nil {
		return nil, err
	}
	return call(ctx, c, "failPayment", http.MethodPost, paymentPath(paymentID)+"/fail", nil, nil,
		func() (*model.PaymentStatusResult, error) { return c.mock.FailPayment(paymentID) })
}

// CancelPayment отменяет платёж.
func (c *Client) CancelPayment(ctx context.Context, paymentID int64) (*model.PaymentStatusResult, error) {
	if err := c.validate.PositiveID("paymentId", paymentID); err != nil {
		return nil, err
	}
	return call(ctx, c, "cancelPayment", http.MethodPost, paymentPath(paymentID)+"/cancel", nil, nil,
		func() (*model.PaymentStatusResult, error) { return c.mock.CancelPayment(paymentID) })
}

// GetPaymentDetail возвращает детали платежа.
func (c *Client) GetPaymentDetail(ctx context.Context, paymentID int64) (*model.PaymentDetail, error) {
	if err := c.validate.PositiveID("paymentId", paymentID); err != nil {
		return nil, err
	}
	return call(ctx, c, "getPaymentDetail", http.MethodGet, paymentPath(paymentID), nil, nil,
		func() (*model.PaymentDetail, error) { return c.mock.GetPaymentDetail(paymentID) })
}

// GetMyPayments возвращает платежи текущего пользователя. Непустой status
// фильтрует по точному совпадению, неизвестный статус даёт пустой список.
func (c *Client) GetMyPayments(ctx context.Context, status string) ([]*model.Payment, error) {
	status = strings.TrimSpace(status)

	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}
	return call(ctx, c, "getMyPayments", http.MethodGet, "/api/payments/my", query, nil,
		func() ([]*model.Payment, error) { return c.mock.GetMyPayments(status) })
}
