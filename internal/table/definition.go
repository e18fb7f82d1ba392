// Package table holds the generic list controller shared by every console resource.
package table

import (
	"fmt"
	"strconv"

	"ims/internal/client"
	"ims/internal/validation"

	"github.com/tidwall/gjson"
)

// Form is a typed, per-resource form as entered by the user.
type Form interface {
	Values() validation.Fields
	Body() (client.Body, error)
}

// Uploader is implemented by forms that carry files.
type Uploader interface {
	Attach(field string, upload *client.Upload) bool
}

type ColumnKind string

const (
	ColumnText   ColumnKind = "text"
	ColumnNumber ColumnKind = "number"
)

type Column[T any] struct {
	Key        string
	Label      string
	Kind       ColumnKind
	Searchable bool
	Value      func(T) string
	// Number is used instead of Value when sorting ColumnNumber columns.
	Number func(T) float64
}

func TextColumn[T any](key, label string, searchable bool, value func(T) string) Column[T] {
	return Column[T]{Key: key, Label: label, Kind: ColumnText, Searchable: searchable, Value: value}
}

// NumberColumn sorts numerically and displays numbers without trailing zeros.
func NumberColumn[T any](key, label string, number func(T) float64) Column[T] {
	return Column[T]{Key: key, Label: label, Kind: ColumnNumber, Number: number, Value: func(item T) string {
		return FormatNumber(number(item))
	}}
}

func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Filter is an exact-value filter over one attribute, e.g. role or product type.
type Filter[T any] struct {
	Key     string
	Label   string
	Options []string
	Value   func(T) string
}

type Paths struct {
	List   string
	Create string
	Update func(id int) string
	Delete func(id int) string
}

// CollectionPaths covers services that expose list, create, update and delete on one collection path.
func CollectionPaths(base string) Paths {
	item := func(id int) string { return fmt.Sprintf("%s%d", base, id) }
	return Paths{List: base, Create: base, Update: item, Delete: item}
}

type Definition[T any, F Form] struct {
	Name string
	// Noun is the singular used in prompts.
	Noun string

	Paths        Paths
	CreateSchema validation.Schema
	// UpdateSchema falls back to CreateSchema when it has no fields.
	UpdateSchema validation.Schema

	Normalize func(raw gjson.Result) (T, error)
	ID        func(T) int

	Columns     []Column[T]
	DefaultSort string
	// Status is nil for resources without a status concept.
	Status        func(T) string
	StatusOptions []string
	Filters       []Filter[T]

	NewForm func() F
	FormOf  func(T) F
}

func (d *Definition[T, F]) Column(key string) (Column[T], bool) {
	for _, col := range d.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

func (d *Definition[T, F]) Filter(key string) (Filter[T], bool) {
	for _, f := range d.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return Filter[T]{}, false
}

// SchemaFor returns the schema forms are checked against for op.
func (d *Definition[T, F]) SchemaFor(op Operation) validation.Schema {
	if op == OpUpdate && len(d.UpdateSchema.Fields) > 0 {
		return d.UpdateSchema
	}
	return d.CreateSchema
}

func (d *Definition[T, F]) DeletePrompt() string {
	noun := d.Noun
	if noun == "" {
		noun = "record"
	}
	return fmt.Sprintf("Are you sure you want to delete this %s?", noun)
}
