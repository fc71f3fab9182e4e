package handler

import (
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// CreateStore создаёт магазин.
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStoreRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "createStore", err)
		return
	}

	res, err := h.api.CreateStore(h.apiContext(r), req)
	if err != nil {
		h.writeError(w, "createStore", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetStoreDetail возвращает карточку магазина.
func (h *Handler) GetStoreDetail(w http.ResponseWriter, r *http.Request) {
	store, err := h.api.GetStoreDetail(h.apiContext(r), pathParam(r, "publicId"))
	if err != nil {
		h.writeError(w, "getStoreDetail", err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

// GetStoreMenus возвращает меню магазина.
func (h *Handler) GetStoreMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.api.GetStoreMenus(h.apiContext(r), pathParam(r, "publicId"))
	if err != nil {
		h.writeError(w, "getStoreMenus", err)
		return
	}
	writeJSON(w, http.StatusOK, menus)
}

// GetStoreReviews возвращает отзывы о магазине.
func (h *Handler) GetStoreReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.api.GetStoreReviews(h.apiContext(r), pathParam(r, "publicId"))
	if err != nil {
		h.writeError(w, "getStoreReviews", err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
