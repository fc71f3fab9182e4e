package handler

import (
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// CreateStoreReview создаёт отзыв о магазине.
func (h *Handler) CreateStoreReview(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStoreReviewRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "createStoreReview", err)
		return
	}

	res, err := h.api.CreateStoreReview(h.apiContext(r), pathParam(r, "publicId"), req)
	if err != nil {
		h.writeError(w, "createStoreReview", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetMyReviews возвращает отзывы текущего пользователя.
func (h *Handler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.api.GetMyReviews(h.apiContext(r))
	if err != nil {
		h.writeError(w, "getMyReviews", err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// GetReviewDetail возвращает отзыв.
func (h *Handler) GetReviewDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.api.GetReviewDetail(h.apiContext(r), pathParam(r, "publicId"))
	if err != nil {
		h.writeError(w, "getReviewDetail", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// DeleteMyReview удаляет отзыв текущего пользователя.
func (h *Handler) DeleteMyReview(w http.ResponseWriter, r *http.Request) {
	res, err := h.api.DeleteMyReview(h.apiContext(r), pathParam(r, "publicId"))
	if err != nil {
		h.writeError(w, "deleteMyReview", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
