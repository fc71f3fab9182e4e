package handler

import (
	"net/http"
	"strings"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// SearchStores ищет магазины.
func (h *Handler) SearchStores(w http.ResponseWriter, r *http.Request) {
	q := model.SearchQuery{Keyword: r.URL.Query().Get("keyword")}

	if raw := strings.TrimSpace(r.URL.Query().Get("categoryId")); raw != "" {
		id, err := parseInt64Param("categoryId", raw)
		if err != nil {
			h.writeError(w, "searchStores", err)
			return
		}
		q.CategoryID = id
	}

	var err error
	if q.Page, err = parseIntQuery(r, "page"); err != nil {
		h.writeError(w, "searchStores", err)
		return
	}
	if q.Size, err = parseIntQuery(r, "size"); err != nil {
		h.writeError(w, "searchStores", err)
		return
	}

	res, err := h.api.SearchStores(h.apiContext(r), q)
	if err != nil {
		h.writeError(w, "searchStores", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetSearchHistory возвращает последние поисковые запросы.
func (h *Handler) GetSearchHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntQuery(r, "limit")
	if err != nil {
		h.writeError(w, "getSearchHistory", err)
		return
	}

	history, err := h.api.GetSearchHistory(h.apiContext(r), limit)
	if err != nil {
		h.writeError(w, "getSearchHistory", err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
