package table

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectSortByName(t *testing.T) {
	def := supplyDefinition()
	items := []supply{{ID: 1, Name: "Milk"}, {ID: 2, Name: "Coffee"}}

	page := def.Project(items, Criteria{SortKey: "name"})

	assert.Equal(t, []supply{{ID: 2, Name: "Coffee"}, {ID: 1, Name: "Milk"}}, page.Items)
	assert.Equal(t, []supply{{ID: 1, Name: "Milk"}, {ID: 2, Name: "Coffee"}}, items)
}

func TestProjectIsPure(t *testing.T) {
	def := supplyDefinition()
	items := []supply{{ID: 3, Name: "sugar"}, {ID: 1, Name: "Milk"}, {ID: 2, Name: "Coffee"}}
	snapshot := slices.Clone(items)
	criteria := Criteria{Search: "m", SortKey: "name", Descending: true}

	first := def.Project(items, criteria)
	second := def.Project(items, criteria)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, items)
}

func TestProjectSearch(t *testing.T) {
	def := supplyDefinition()
	items := []supply{
		{ID: 1, Name: "Whole Milk"},
		{ID: 2, Name: "Coffee beans"},
		{ID: 3, Name: "Oat MILK"},
		{ID: 4, Name: "Sugar"},
	}

	tests := []struct {
		search   string
		expected []int
	}{
		{search: "", expected: []int{1, 2, 3, 4}},
		{search: "milk", expected: []int{1, 3}},
		{search: "BEANS", expected: []int{2}},
		{search: " beans", expected: []int{2}},
		{search: "  BEANS ", expected: []int{}},
		{search: " ", expected: []int{1, 2, 3}},
		{search: "tea", expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			page := def.Project(items, Criteria{Search: tt.search})
			ids := []int{}
			for _, item := range page.Items {
				assert.Contains(t, strings.ToLower(item.Name), strings.ToLower(tt.search))
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.expected, ids)
			assert.Equal(t, len(tt.expected), page.Total)
		})
	}
}

func TestProjectSortIsStableBothWays(t *testing.T) {
	def := supplyDefinition()
	items := []supply{
		{ID: 1, Name: "Milk"},
		{ID: 2, Name: "coffee"},
		{ID: 3, Name: "Milk"},
		{ID: 4, Name: "Água"},
		{ID: 5, Name: "Beans"},
	}

	ids := func(page Page[supply]) []int {
		out := []int{}
		for _, item := range page.Items {
			out = append(out, item.ID)
		}
		return out
	}

	assert.Equal(t, []int{4, 5, 2, 1, 3}, ids(def.Project(items, Criteria{SortKey: "name"})))
	assert.Equal(t, []int{1, 3, 2, 5, 4}, ids(def.Project(items, Criteria{SortKey: "name", Descending: true})))
}

func TestProjectSortWithoutTiesReverses(t *testing.T) {
	def := supplyDefinition()
	items := []supply{{ID: 1, Name: "Milk"}, {ID: 2, Name: "Coffee"}, {ID: 3, Name: "Tea"}}

	asc := def.Project(items, Criteria{SortKey: "name"}).Items
	desc := def.Project(items, Criteria{SortKey: "name", Descending: true}).Items

	slices.Reverse(desc)
	assert.Equal(t, asc, desc)
}

func TestProjectNumericSort(t *testing.T) {
	def := supplyDefinition()
	items := []supply{{ID: 1, Quantity: 100}, {ID: 2, Quantity: 9}, {ID: 3, Quantity: 25.5}}

	page := def.Project(items, Criteria{SortKey: "quantity"})

	assert.Equal(t, []supply{{ID: 2, Quantity: 9}, {ID: 3, Quantity: 25.5}, {ID: 1, Quantity: 100}}, page.Items)
}

func TestProjectStatusFilter(t *testing.T) {
	items := []supply{
		{ID: 1, Name: "Cups", Status: "Available"},
		{ID: 2, Name: "Lids", Status: "Low Stock"},
		{ID: 3, Name: "Straws", Status: "Out of Stock"},
	}

	def := supplyDefinition()
	assert.Len(t, def.Project(items, Criteria{Status: "Low Stock"}).Items, 1)
	assert.Len(t, def.Project(items, Criteria{Status: "all"}).Items, 3)
	assert.Len(t, def.Project(items, Criteria{Status: ""}).Items, 3)

	def.Status = nil
	assert.Len(t, def.Project(items, Criteria{Status: "Low Stock"}).Items, 3)
}

func TestProjectFilters(t *testing.T) {
	def := supplyDefinition()
	def.Filters = []Filter[supply]{{Key: "initial", Value: func(s supply) string { return s.Name[:1] }}}
	items := []supply{{ID: 1, Name: "Cups"}, {ID: 2, Name: "Lids"}, {ID: 3, Name: "Cones"}}

	page := def.Project(items, Criteria{Filters: map[string]string{"initial": "C", "unknown": "x"}})
	assert.Equal(t, 2, page.Total)

	page = def.Project(items, Criteria{Filters: map[string]string{"initial": "ALL"}})
	assert.Equal(t, 3, page.Total)
}

func TestProjectPagination(t *testing.T) {
	def := supplyDefinition()
	items := []supply{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}, {ID: 4, Name: "d"}, {ID: 5, Name: "e"}}

	tests := []struct {
		name     string
		page     int
		size     int
		expected []int
		outPage  int
	}{
		{name: "all", page: 0, size: 0, expected: []int{1, 2, 3, 4, 5}, outPage: 1},
		{name: "first", page: 1, size: 2, expected: []int{1, 2}, outPage: 1},
		{name: "last partial", page: 3, size: 2, expected: []int{5}, outPage: 3},
		{name: "past end", page: 4, size: 2, expected: []int{}, outPage: 4},
		{name: "page below one", page: -2, size: 2, expected: []int{1, 2}, outPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := def.Project(items, Criteria{SortKey: "name", Page: tt.page, PageSize: tt.size})
			ids := []int{}
			for _, item := range page.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.expected, ids)
			assert.Equal(t, 5, page.Total)
			assert.Equal(t, tt.outPage, page.Page)
		})
	}
}
