package ingredients

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

const Path = "/ingredients/ingredients/"

var Schema = validation.Schema{
	Resource: "ingredients",
	Fields: []validation.Field{
		{Name: "name", Label: "Ingredient Name", Kind: validation.KindText, Required: true},
		{Name: "amount", Label: "Amount", Kind: validation.KindNumber, Required: true, Rules: []validation.Rule{validation.NonNegative}},
		{Name: "measurement", Label: "Measurement", Kind: validation.KindText, Required: true},
		{Name: "bestBeforeDate", Label: "Best Before Date", Kind: validation.KindDate, Required: true},
		{Name: "expirationDate", Label: "Expiration Date", Kind: validation.KindDate, Required: true},
	},
}

type Form struct {
	Name           string `json:"name" form:"name"`
	Amount         string `json:"amount" form:"amount"`
	Measurement    string `json:"measurement" form:"measurement"`
	BestBeforeDate string `json:"bestBeforeDate" form:"bestBeforeDate"`
	ExpirationDate string `json:"expirationDate" form:"expirationDate"`
}

type payload struct {
	IngredientName string  `json:"IngredientName"`
	Amount         float64 `json:"Amount"`
	Measurement    string  `json:"Measurement"`
	BestBeforeDate string  `json:"BestBeforeDate"`
	ExpirationDate string  `json:"ExpirationDate"`
}

func (f *Form) Values() validation.Fields {
	return validation.Fields{
		"name":           f.Name,
		"amount":         f.Amount,
		"measurement":    f.Measurement,
		"bestBeforeDate": f.BestBeforeDate,
		"expirationDate": f.ExpirationDate,
	}
}

func (f *Form) Body() (client.Body, error) {
	amount, _ := validation.ParseNumber(f.Amount)
	return client.JSONBody{Value: payload{
		IngredientName: strings.TrimSpace(f.Name),
		Amount:         amount,
		Measurement:    strings.TrimSpace(f.Measurement),
		BestBeforeDate: strings.TrimSpace(f.BestBeforeDate),
		ExpirationDate: strings.TrimSpace(f.ExpirationDate),
	}}, nil
}

func Definition(opts inventory.Options) *table.Definition[models.Ingredient, *Form] {
	return &table.Definition[models.Ingredient, *Form]{
		Name:         "ingredients",
		Noun:         "ingredient",
		Paths:        table.CollectionPaths(Path),
		CreateSchema: Schema,
		Normalize: func(raw gjson.Result) (models.Ingredient, error) {
			return normalize(raw, opts)
		},
		ID: func(i models.Ingredient) int { return i.ID },
		Columns: []table.Column[models.Ingredient]{
			table.TextColumn("name", "Name", true, func(i models.Ingredient) string { return i.Name }),
			table.NumberColumn("amount", "Amount", func(i models.Ingredient) float64 { return i.Amount }),
			table.TextColumn("measurement", "Measurement", false, func(i models.Ingredient) string { return i.Measurement }),
			table.TextColumn("bestBeforeDate", "Best Before", false, func(i models.Ingredient) string { return i.BestBeforeDate }),
			table.TextColumn("expirationDate", "Expiration", false, func(i models.Ingredient) string { return i.ExpirationDate }),
			table.TextColumn("status", "Status", false, func(i models.Ingredient) string { return i.Status }),
		},
		DefaultSort:   "name",
		Status:        func(i models.Ingredient) string { return i.Status },
		StatusOptions: metadata.StockStatuses(),
		NewForm:       func() *Form { return &Form{} },
		FormOf: func(i models.Ingredient) *Form {
			return &Form{
				Name:           i.Name,
				Amount:         table.FormatNumber(i.Amount),
				Measurement:    i.Measurement,
				BestBeforeDate: i.BestBeforeDate,
				ExpirationDate: i.ExpirationDate,
			}
		},
	}
}

func normalize(raw gjson.Result, opts inventory.Options) (models.Ingredient, error) {
	id, err := table.RequireID(raw, "IngredientID", "id")
	if err != nil {
		return models.Ingredient{}, err
	}

	amount := table.Lookup(raw, "Amount", "amount").Float()

	return models.Ingredient{
		ID:             id,
		Name:           table.Lookup(raw, "IngredientName", "name").String(),
		Amount:         amount,
		Measurement:    table.Lookup(raw, "Measurement", "measurement").String(),
		BestBeforeDate: table.DatePart(table.Lookup(raw, "BestBeforeDate", "bestBeforeDate").String()),
		ExpirationDate: table.DatePart(table.Lookup(raw, "ExpirationDate", "expirationDate").String()),
		Status:         inventory.StockStatus(raw, amount, opts),
	}, nil
}
