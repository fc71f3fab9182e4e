package mock

import (
	"strings"

	"github.com/mmeshcher/baedariyo/internal/model"
)

const (
	defaultSearchPageSize = 20
	defaultHistoryLimit   = 5
)

// SearchStores ищет подстроку ключевого слова в названии или описании магазина
// без учёта регистра. Категория не учитывается.
func (s *State) SearchStores(q model.SearchQuery) (*model.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	page := max(q.Page, 0)
	size := q.Size
	if size <= 0 {
		size = defaultSearchPageSize
	}

	matched := make([]model.StoreSummary, 0, len(s.searchStores))
	for _, st := range s.searchStores {
		if keyword == "" ||
			strings.Contains(strings.ToLower(st.StoreName), keyword) ||
			strings.Contains(strings.ToLower(st.Description), keyword) {
			matched = append(matched, st)
		}
	}

	start := len(matched)
	if page <= len(matched)/size {
		start = page * size
	}
	end := min(start+size, len(matched))
	pageItems := make([]model.StoreSummary, end-start)
	copy(pageItems, matched[start:end])

	return &model.SearchResult{Stores: pageItems, TotalCount: len(matched)}, nil
}

// GetSearchHistory возвращает последние поисковые запросы.
func (s *State) GetSearchHistory(limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, len(s.searchHistory))
	out := make([]string, limit)
	copy(out, s.searchHistory[:limit])
	return out, nil
}
