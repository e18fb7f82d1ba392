// Package console exposes resource controllers to the local HTTP API and the CLI.
package console

import (
	"context"
	"encoding/json"

	"ims/internal/client"
	"ims/internal/table"
	"ims/internal/validation"

	"github.com/gin-gonic/gin"
)

// Resource is a controller with its element and form types erased, so surfaces
// can hold every resource in one registry.
type Resource interface {
	Name() string
	Describe() Description
	RegisterRoutes(router *gin.RouterGroup)

	List(ctx context.Context, criteria table.Criteria, reload bool) (Listing, error)
	Show(ctx context.Context, id int) (Row, error)
	Create(ctx context.Context, input Input) error
	Update(ctx context.Context, id int, input Input) error
	Delete(ctx context.Context, id int, confirm func(prompt string) bool) error
	Close()
}

type ColumnInfo struct {
	Key        string           `json:"key"`
	Label      string           `json:"label"`
	Kind       table.ColumnKind `json:"kind"`
	Searchable bool             `json:"searchable"`
}

type FilterInfo struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

// Description is what a front end needs to render a resource's table and forms.
type Description struct {
	Resource      string            `json:"resource"`
	Noun          string            `json:"noun"`
	Create        validation.Schema `json:"create"`
	Update        validation.Schema `json:"update"`
	Columns       []ColumnInfo      `json:"columns"`
	Filters       []FilterInfo      `json:"filters,omitempty"`
	StatusOptions []string          `json:"status_options,omitempty"`
	DefaultSort   string            `json:"default_sort,omitempty"`
}

// Row is one record rendered through the resource's columns.
type Row struct {
	ID    int         `json:"id"`
	Cells []string    `json:"cells"`
	Item  interface{} `json:"item"`
}

type Listing struct {
	Columns  []ColumnInfo `json:"columns"`
	Rows     []Row        `json:"-"`
	Items    interface{}  `json:"items"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Status   table.Status `json:"status"`
}

// Input is a form as given on the command line or in a request: a JSON object,
// single field overrides and attached files.
type Input struct {
	Data  json.RawMessage
	Set   map[string]string
	Files map[string]*client.Upload
}
