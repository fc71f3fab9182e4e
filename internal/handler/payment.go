package handler

import (
	"context"
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

type createPaymentResponse struct {
	PaymentID int64 `json:"paymentId"`
}

// CreatePayment создаёт платёж.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePaymentRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "createPayment", err)
		return
	}

	id, err := h.api.CreatePayment(h.apiContext(r), req)
	if err != nil {
		h.writeError(w, "createPayment", err)
		return
	}
	writeJSON(w, http.StatusOK, createPaymentResponse{PaymentID: id})
}

// ApprovePayment подтверждает платёж.
func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := parseInt64Param("paymentId", pathParam(r, "paymentId"))
	if err != nil {
		h.writeError(w, "approvePayment", err)
		return
	}

	var req model.ApprovePaymentRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "approvePayment", err)
		return
	}

	res, err := h.api.ApprovePayment(h.apiContext(r), paymentID, req)
	if err != nil {
		h.writeError(w, "approvePayment", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// FailPayment отмечает платёж как неуспешный.
func (h *Handler) FailPayment(w http.ResponseWriter, r *http.Request) {
	h.changePaymentStatus(w, r, "failPayment", h.api.FailPayment)
}

// CancelPayment отменяет платёж.
func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	h.changePaymentStatus(w, r, "cancelPayment", h.api.CancelPayment)
}

func (h *Handler) changePaymentStatus(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, paymentID int64) (*model.PaymentStatusResult, error)) {
	paymentID, err := parseInt64Param("paymentId", pathParam(r, "paymentId"))
	if err != nil {
		h.writeError(w, op, err)
		return
	}

	res, err := fn(h.apiContext(r), paymentID)
	if err != nil {
		h.writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetPaymentDetail возвращает детали платежа.
func (h *Handler) GetPaymentDetail(w http.ResponseWriter, r *http.Request) {
	paymentID, err := parseInt64Param("paymentId", pathParam(r, "paymentId"))
	if err != nil {
		h.writeError(w, "getPaymentDetail", err)
		return
	}

	detail, err := h.api.GetPaymentDetail(h.apiContext(r), paymentID)
	if err != nil {
		h.writeError(w, "getPaymentDetail", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetMyPayments возвращает платежи текущего пользователя.
func (h *Handler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.api.GetMyPayments(h.apiContext(r), r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, "getMyPayments", err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
