// Package supplies manages packaging and consumables, which the upstream service calls materials.
package supplies

import (
	"strings"

	"ims/internal/client"
	"ims/internal/inventory"
	"ims/internal/table"
	"ims/internal/validation"
	"ims/pkg/metadata"
	"ims/pkg/models"

	"github.com/tidwall/gjson"
)

const Path = "/materials/materials/"

var Schema = validation.Schema{
	Resource: "supplies",
	Fields: []validation.Field{
		{Name: "name", Label: "Supply Name", Kind: validation.KindText, Required: true},
		{Name: "quantity", Label: "Quantity", Kind: validation.KindNumber, Required: true, Rules: []validation.Rule{validation.NonNegative}},
		{Name: "measurement", Label: "Measurement", Kind: validation.KindText, Required: true},
		{Name: "supplyDate", Label: "Date Added", Kind: validation.KindDate, Required: true},
	},
}

type Form struct {
	Name        string `json:"name" form:"name"`
	Quantity    string `json:"quantity" form:"quantity"`
	Measurement string `json:"measurement" form:"measurement"`
	SupplyDate  string `json:"supplyDate" form:"supplyDate"`
}

type payload struct {
	MaterialName        string  `json:"MaterialName"`
	MaterialQuantity    float64 `json:"MaterialQuantity"`
	MaterialMeasurement string  `json:"MaterialMeasurement"`
	DateAdded           string  `json:"DateAdded"`
}

func (f *Form) Values() validation.Fields {
	return validation.Fields{
		"name":        f.Name,
		"quantity":    f.Quantity,
		"measurement": f.Measurement,
		"supplyDate":  f.SupplyDate,
	}
}

func (f *Form) Body() (client.Body, error) {
	quantity, _ := validation.ParseNumber(f.Quantity)
	return client.JSONBody{Value: payload{
		MaterialName:        strings.TrimSpace(f.Name),
		MaterialQuantity:    quantity,
		MaterialMeasurement: strings.TrimSpace(f.Measurement),
		DateAdded:           strings.TrimSpace(f.SupplyDate),
	}}, nil
}

func Definition(opts inventory.Options) *table.Definition[models.Supply, *Form] {
	return &table.Definition[models.Supply, *Form]{
		Name:         "supplies",
		Noun:         "supply",
		Paths:        table.CollectionPaths(Path),
		CreateSchema: Schema,
		Normalize: func(raw gjson.Result) (models.Supply, error) {
			return normalize(raw, opts)
		},
		ID: func(s models.Supply) int { return s.ID },
		Columns: []table.Column[models.Supply]{
			table.TextColumn("name", "Name", true, func(s models.Supply) string { return s.Name }),
			table.NumberColumn("quantity", "Quantity", func(s models.Supply) float64 { return s.Quantity }),
			table.TextColumn("measurement", "Measurement", false, func(s models.Supply) string { return s.Measurement }),
			table.TextColumn("supplyDate", "Date Added", false, func(s models.Supply) string { return s.DateAdded }),
			table.TextColumn("status", "Status", false, func(s models.Supply) string { return s.Status }),
		},
		DefaultSort:   "name",
		Status:        func(s models.Supply) string { return s.Status },
		StatusOptions: metadata.StockStatuses(),
		NewForm:       func() *Form { return &Form{} },
		FormOf: func(s models.Supply) *Form {
			return &Form{
				Name:        s.Name,
				Quantity:    table.FormatNumber(s.Quantity),
				Measurement: s.Measurement,
				SupplyDate:  s.DateAdded,
			}
		},
	}
}

func normalize(raw gjson.Result, opts inventory.Options) (models.Supply, error) {
	id, err := table.RequireID(raw, "MaterialID", "id")
	if err != nil {
		return models.Supply{}, err
	}

	quantity := table.Lookup(raw, "MaterialQuantity", "quantity").Float()

	return models.Supply{
		ID:          id,
		Name:        table.Lookup(raw, "MaterialName", "name").String(),
		Quantity:    quantity,
		Measurement: table.Lookup(raw, "MaterialMeasurement", "measurement").String(),
		DateAdded:   table.DatePart(table.Lookup(raw, "DateAdded", "dateAdded").String()),
		Status:      inventory.StockStatus(raw, quantity, opts),
	}, nil
}
