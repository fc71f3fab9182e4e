package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/baedariyo/internal/backend"
	"github.com/mmeshcher/baedariyo/internal/fallback"
	"github.com/mmeshcher/baedariyo/internal/mock"
	"github.com/mmeshcher/baedariyo/internal/model"
)

type recordedCall struct {
	method string
	path   string
	query  url.Values
	body   any
}

type stubBackend struct {
	calls    []recordedCall
	response string
	err      error
}

func (s *stubBackend) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	s.calls = append(s.calls, recordedCall{method: method, path: path, query: query, body: body})
	if s.err != nil {
		return s.err
	}
	if s.response == "" || out == nil {
		return nil
	}
	return json.Unmarshal([]byte(s.response), out)
}

type networkErr struct{}

func (networkErr) Error() string { return "network error" }
func (networkErr) Code() string { return fallback.CodeNetwork }

func newTestClient(t *testing.T, b *stubBackend) *Client {
	t.Helper()
	state, err := mock.NewState()
	require.NoError(t, err)
	return NewClient(b, state, fallback.NewDispatcher(nil, false))
}

func TestValidationNeverReachesBackend(t *testing.T) {
	b := &stubBackend{}
	c := newTestClient(t, b)
	ctx := context.Background()

	_, err := c.GetStoreDetail(ctx, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.GetPaymentDetail(ctx, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.ApprovePayment(ctx, 0, model.ApprovePaymentRequest{TransactionID: "tx"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.CreateOrder(ctx, model.CreateOrderRequest{StoreID: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.LoginUser(ctx, model.LoginRequest{Email: "x@y.z"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.AssignRiderToOrder(ctx, model.AssignRiderRequest{OrderID: -1})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, b.calls)
}

func TestRealResponseIsReturned(t *testing.T) {
	b := &stubBackend{response: `{"storePublicId":"real","storeName":"진짜 가게"}`}
	c := newTestClient(t, b)

	st, err := c.GetStoreDetail(context.Background(), "real")
	require.NoError(t, err)
	assert.Equal(t, "진짜 가게", st.StoreName)

	require.Len(t, b.calls, 1)
	assert.Equal(t, http.MethodGet, b.calls[0].method)
	assert.Equal(t, "/api/stores/real", b.calls[0].path)
}

func TestFallsBackToMockWhenBackendUnavailable(t *testing.T) {
	b := &stubBackend{err: networkErr{}}
	c := newTestClient(t, b)
	ctx := context.Background()

	st, err := c.GetStoreDetail(ctx, mock.DefaultStorePublicID)
	require.NoError(t, err)
	assert.Equal(t, "Mock 바삭치킨", st.StoreName)

	order, err := c.CreateOrder(ctx, model.CreateOrderRequest{
		StoreID: 1,
		Menus: []model.OrderMenuRequest{
			{MenuName: "A", MenuPrice: 1000, Quantity: 2},
			{MenuName: "B", MenuPrice: 500, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), order.Amount)
	assert.Equal(t, model.PaymentStatusReady, order.PaymentStatus)

	assert.Equal(t, "/api/orders/users/create", b.calls[1].path)
}

func TestApplicationErrorIsPropagated(t *testing.T) {
	want := &backend.ResponseError{Status: http.StatusNotFound, Message: "not found"}
	b := &stubBackend{err: want}
	c := newTestClient(t, b)

	_, err := c.GetReviewDetail(context.Background(), "missing")
	require.Error(t, err)

	var respErr *backend.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusNotFound, respErr.StatusCode())
}

func TestEndpoints(t *testing.T) {
	b := &stubBackend{err: networkErr{}}
	c := newTestClient(t, b)
	ctx := context.Background()

	_, err := c.SignupRider(ctx, model.SignupRequest{Email: "r@x.io", Password: "pw"})
	require.NoError(t, err)
	_, err = c.WithdrawUser(ctx)
	require.NoError(t, err)
	_, err = c.AssignRiderToOrder(ctx, model.AssignRiderRequest{OrderID: 5000})
	require.NoError(t, err)
	_, err = c.ApprovePayment(ctx, 6102, model.ApprovePaymentRequest{TransactionID: "tx"})
	require.NoError(t, err)
	_, err = c.GetMyPayments(ctx, "APPROVED")
	require.NoError(t, err)
	_, err = c.SearchStores(ctx, model.SearchQuery{Keyword: " 마라 ", CategoryID: 3, Size: 10})
	require.NoError(t, err)
	_, err = c.GetSearchHistory(ctx, 3)
	require.NoError(t, err)
	_, err = c.DeleteMyReview(ctx, "abc/def")
	require.NoError(t, err)

	want := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/rider/signup"},
		{http.MethodPatch, "/api/auth/user/withdraw"},
		{http.MethodPost, "/api/orders/rider/assign"},
		{http.MethodPost, "/api/payments/6102/approve"},
		{http.MethodGet, "/api/payments/my"},
		{http.MethodGet, "/api/stores"},
		{http.MethodGet, "/api/search/history"},
		{http.MethodDelete, "/api/reviews/abc%2Fdef"},
	}
	require.Len(t, b.calls, len(want))
	for i, w := range want {
		assert.Equal(t, w.method, b.calls[i].method, "call %d", i)
		assert.Equal(t, w.path, b.calls[i].path, "call %d", i)
	}

	assert.Equal(t, "APPROVED", b.calls[4].query.Get("status"))
	assert.Equal(t, "마라", b.calls[5].query.Get("keyword"))
	assert.Equal(t, "3", b.calls[5].query.Get("categoryId"))
	assert.Equal(t, "0", b.calls[5].query.Get("page"))
	assert.Equal(t, "10", b.calls[5].query.Get("size"))
	assert.Equal(t, "3", b.calls[6].query.Get("limit"))
}

func TestWithdrawEmptyBody(t *testing.T) {
	c := newTestClient(t, &stubBackend{})

	res, err := c.WithdrawRider(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestLoginEmptyBody(t *testing.T) {
	b := &stubBackend{}
	c := newTestClient(t, b)

	res, err := c.LoginUser(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.ErrorIs(t, err, ErrEmptyResponse)
	assert.Nil(t, res)
	assert.NotErrorIs(t, err, ErrValidation)

	_, err = c.LoginRider(context.Background(), model.LoginRequest{Email: "r@b.c", Password: "pw"})
	require.ErrorIs(t, err, ErrEmptyResponse)
	assert.Len(t, b.calls, 2)
}

func TestApproveWithoutTransactionID(t *testing.T) {
	b := &stubBackend{err: networkErr{}}
	c := newTestClient(t, b)

	res, err := c.ApprovePayment(context.Background(), 6102, model.ApprovePaymentRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusApproved, res.Status)
	assert.Nil(t, res.TransactionID)

	require.Len(t, b.calls, 1)
	assert.Equal(t, "/api/payments/6102/approve", b.calls[0].path)
}

func TestGetMyPaymentsUnknownStatus(t *testing.T) {
	b := &stubBackend{err: networkErr{}}
	c := newTestClient(t, b)

	payments, err := c.GetMyPayments(context.Background(), " PAID ")
	require.NoError(t, err)
	assert.NotNil(t, payments)
	assert.Empty(t, payments)

	require.Len(t, b.calls, 1)
	assert.Equal(t, "PAID", b.calls[0].query.Get("status"))
}
