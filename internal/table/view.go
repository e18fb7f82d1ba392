package table

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const FilterAll = "all"

type Criteria struct {
	Search     string            `json:"search"`
	SortKey    string            `json:"sort"`
	Descending bool              `json:"desc"`
	Status     string            `json:"status"`
	Filters    map[string]string `json:"filters,omitempty"`
	Page       int               `json:"page"`
	// PageSize of 0 returns every matching row.
	PageSize int `json:"page_size"`
}

type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Project filters, sorts and pages items. It never modifies items.
func (d *Definition[T, F]) Project(items []T, criteria Criteria) Page[T] {
	rows := make([]T, 0, len(items))
	search := strings.ToLower(criteria.Search)

	for _, item := range items {
		if !d.matchesSearch(item, search) || !d.matchesFilters(item, criteria) {
			continue
		}
		rows = append(rows, item)
	}

	d.sort(rows, criteria)

	return paginate(rows, criteria.Page, criteria.PageSize)
}

func (d *Definition[T, F]) matchesSearch(item T, search string) bool {
	if search == "" {
		return true
	}
	for _, col := range d.Columns {
		if col.Searchable && col.Value != nil && strings.Contains(strings.ToLower(col.Value(item)), search) {
			return true
		}
	}
	return false
}

func (d *Definition[T, F]) matchesFilters(item T, criteria Criteria) bool {
	if d.Status != nil && active(criteria.Status) && d.Status(item) != criteria.Status {
		return false
	}

	for key, value := range criteria.Filters {
		if !active(value) {
			continue
		}
		filter, ok := d.Filter(key)
		if !ok {
			continue
		}
		if filter.Value(item) != value {
			return false
		}
	}

	return true
}

func active(value string) bool {
	return value != "" && !strings.EqualFold(value, FilterAll)
}

func (d *Definition[T, F]) sort(rows []T, criteria Criteria) {
	key := criteria.SortKey
	if key == "" {
		key = d.DefaultSort
	}
	col, ok := d.Column(key)
	if !ok {
		return
	}

	var compare func(a, b T) int
	if col.Kind == ColumnNumber && col.Number != nil {
		compare = func(a, b T) int { return cmp.Compare(col.Number(a), col.Number(b)) }
	} else if col.Value != nil {
		// Collators keep internal buffers, so each projection gets its own.
		collator := collate.New(language.English)
		compare = func(a, b T) int { return collator.CompareString(col.Value(a), col.Value(b)) }
	} else {
		return
	}

	if criteria.Descending {
		asc := compare
		compare = func(a, b T) int { return asc(b, a) }
	}

	slices.SortStableFunc(rows, compare)
}

func paginate[T any](rows []T, page, size int) Page[T] {
	total := len(rows)
	if size <= 0 {
		return Page[T]{Items: rows, Total: total, Page: 1, PageSize: 0}
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start >= total {
		return Page[T]{Items: []T{}, Total: total, Page: page, PageSize: size}
	}
	end := min(start+size, total)

	return Page[T]{Items: rows[start:end], Total: total, Page: page, PageSize: size}
}
