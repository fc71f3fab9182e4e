package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmeshcher/baedariyo/internal/model"
)

// SearchStores ищет магазины по ключевому слову и категории.
func (c *Client) SearchStores(ctx context.Context, q model.SearchQuery) (*model.SearchResult, error) {
	query := url.Values{}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		query.Set("keyword", kw)
	}
	if q.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	query.Set("page", strconv.Itoa(max(q.Page, 0)))
	if q.Size > 0 {
		query.Set("size", strconv.Itoa(q.Size))
	}

	return call(ctx, c, "searchStores", http.MethodGet, "/api/stores", query, nil,
		func() (*model.SearchResult, error) { return c.mock.SearchStores(q) })
}

// GetSearchHistory возвращает последние поисковые запросы.
func (c *Client) GetSearchHistory(ctx context.Context, limit int) ([]string, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	return call(ctx, c, "getSearchHistory", http.MethodGet, "/api/search/history", query, nil,
		func() ([]string, error) { return c.mock.GetSearchHistory(limit) })
}
