package handler

import (
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// CreateOrder создаёт заказ пользователя.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "createOrder", err)
		return
	}

	res, err := h.api.CreateOrder(h.apiContext(r), req)
	if err != nil {
		h.writeError(w, "createOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AssignRiderToOrder назначает курьера на заказ.
func (h *Handler) AssignRiderToOrder(w http.ResponseWriter, r *http.Request) {
	var req model.AssignRiderRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "assignRiderToOrder", err)
		return
	}

	res, err := h.api.AssignRiderToOrder(h.apiContext(r), req)
	if err != nil {
		h.writeError(w, "assignRiderToOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
