package products

import (
	"fmt"
	"strings"

	"ims/internal/client"
	"ims/internal/table"
	"ims/internal/validation"
	"ims/pkg/models"

	"github.com/tidwall/gjson"
)

// TypePaths are relative to the product type service root.
var TypePaths = table.Paths{
	List:   "/",
	Create: "/create",
	Update: func(id int) string { return fmt.Sprintf("/%d", id) },
	Delete: func(id int) string { return fmt.Sprintf("/%d", id) },
}

var TypeSchema = validation.Schema{
	Resource: "product-types",
	Fields: []validation.Field{
		{Name: "productTypeName", Label: "Type Name", Kind: validation.KindText, Required: true},
	},
}

type TypeForm struct {
	Name string `json:"productTypeName" form:"productTypeName"`
}

func (f *TypeForm) Values() validation.Fields {
	return validation.Fields{"productTypeName": f.Name}
}

func (f *TypeForm) Body() (client.Body, error) {
	return client.JSONBody{Value: map[string]string{"productTypeName": strings.TrimSpace(f.Name)}}, nil
}

func TypeDefinition() *table.Definition[models.ProductType, *TypeForm] {
	return &table.Definition[models.ProductType, *TypeForm]{
		Name:         "product-types",
		Noun:         "product type",
		Paths:        TypePaths,
		CreateSchema: TypeSchema,
		Normalize: func(raw gjson.Result) (models.ProductType, error) {
			id, err := table.RequireID(raw, "productTypeID", "ProductTypeID", "id")
			if err != nil {
				return models.ProductType{}, err
			}
			return models.ProductType{
				ID:   id,
				Name: table.Lookup(raw, "productTypeName", "ProductTypeName", "name").String(),
			}, nil
		},
		ID: func(t models.ProductType) int { return t.ID },
		Columns: []table.Column[models.ProductType]{
			table.NumberColumn("id", "ID", func(t models.ProductType) float64 { return float64(t.ID) }),
			table.TextColumn("productTypeName", "Name", true, func(t models.ProductType) string { return t.Name }),
		},
		DefaultSort: "id",
		NewForm:     func() *TypeForm { return &TypeForm{} },
		FormOf:      func(t models.ProductType) *TypeForm { return &TypeForm{Name: t.Name} },
	}
}
