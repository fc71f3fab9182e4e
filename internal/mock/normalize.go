package mock

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CommentShape форма, в которой пришёл комментарий отзыва.
type CommentShape int

const (
	CommentMissing CommentShape = iota
	// CommentText комментарий пришёл строкой.
	CommentText
	// CommentWrapped комментарий пришёл объектом {"comment": "..."}.
	CommentWrapped
)

// Comment разобранный комментарий отзыва.
type Comment struct {
	Shape CommentShape
	Text  string
}

// ImagesShape форма, в которой пришёл список изображений отзыва.
type ImagesShape int

const (
	ImagesMissing ImagesShape = iota
	// ImagesList изображения пришли массивом.
	ImagesList
	// ImagesWrapped изображения пришли объектом {"images": [...]}.
	ImagesWrapped
)

// Images разобранный список изображений. URLs никогда не nil.
type Images struct {
	Shape ImagesShape
	URLs  []string
}

var jsonNull = []byte("null")

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

// ParseComment разбирает комментарий в одной из двух допустимых форм.
// Любая другая форма даёт пустой комментарий.
func ParseComment(raw json.RawMessage) Comment {
	if isAbsent(raw) {
		return Comment{}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return Comment{Shape: CommentText, Text: strings.TrimSpace(text)}
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return Comment{}
	}
	inner, ok := wrapped["comment"]
	if !ok || isAbsent(inner) {
		return Comment{}
	}
	if err := json.Unmarshal(inner, &text); err != nil {
		return Comment{}
	}
	return Comment{Shape: CommentWrapped, Text: strings.TrimSpace(text)}
}

// ParseImages разбирает список изображений в одной из двух допустимых форм.
// Нестроковые элементы отбрасываются, строки обрезаются, пустые удаляются.
func ParseImages(raw json.RawMessage) Images {
	if isAbsent(raw) {
		return Images{URLs: []string{}}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return Images{Shape: ImagesList, URLs: stringItems(list)}
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return Images{URLs: []string{}}
	}
	inner, ok := wrapped["images"]
	if !ok || isAbsent(inner) {
		return Images{URLs: []string{}}
	}
	if err := json.Unmarshal(inner, &list); err != nil {
		return Images{URLs: []string{}}
	}
	return Images{Shape: ImagesWrapped, URLs: stringItems(list)}
}

func stringItems(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		var v string
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

const defaultRating = 5

// ParseRating приводит оценку к целому от 1 до 5. Отсутствующая, нулевая или
// нечисловая оценка становится 5, дробная округляется.
func ParseRating(raw json.RawMessage) int {
	v, ok := ratingValue(raw)
	if !ok || v == 0 || math.IsNaN(v) {
		return defaultRating
	}
	v = math.Max(1, math.Min(5, v))
	return int(math.Round(v))
}

func ratingValue(raw json.RawMessage) (float64, bool) {
	if isAbsent(raw) {
		return 0, false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
