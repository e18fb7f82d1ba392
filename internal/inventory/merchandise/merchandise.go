package merchandise

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

const Path = "/merchandise/merchandise/"

var Schema = validation.Schema{
	Resource: "merchandise",
	Fields: []validation.Field{
		{Name: "name", Label: "Merchandise Name", Kind: validation.KindText, Required: true},
		{Name: "quantity", Label: "Quantity", Kind: validation.KindNumber, Required: true, Rules: []validation.Rule{validation.NonNegative}},
		{Name: "dateAdded", Label: "Date Added", Kind: validation.KindDate, Required: true},
	},
}

type Form struct {
	Name      string `json:"name" form:"name"`
	Quantity  string `json:"quantity" form:"quantity"`
	DateAdded string `json:"dateAdded" form:"dateAdded"`
}

func (f *Form) Values() validation.Fields {
	return validation.Fields{"name": f.Name, "quantity": f.Quantity, "dateAdded": f.DateAdded}
}

func (f *Form) Body() (client.Body, error) {
	quantity, _ := validation.ParseNumber(f.Quantity)
	return client.JSONBody{Value: map[string]interface{}{
		"MerchandiseName":      strings.TrimSpace(f.Name),
		"MerchandiseQuantity":  quantity,
		"MerchandiseDateAdded": strings.TrimSpace(f.DateAdded),
	}}, nil
}

func Definition(opts inventory.Options) *table.Definition[models.Merchandise, *Form] {
	return &table.Definition[models.Merchandise, *Form]{
		Name:         "merchandise",
		Noun:         "merchandise",
		Paths:        table.CollectionPaths(Path),
		CreateSchema: Schema,
		Normalize: func(raw gjson.Result) (models.Merchandise, error) {
			id, err := table.RequireID(raw, "MerchandiseID", "id")
			if err != nil {
				return models.Merchandise{}, err
			}
			quantity := table.Lookup(raw, "MerchandiseQuantity", "quantity").Float()
			return models.Merchandise{
				ID:        id,
				Name:      table.Lookup(raw, "MerchandiseName", "name").String(),
				Quantity:  quantity,
				DateAdded: table.DatePart(table.Lookup(raw, "MerchandiseDateAdded", "dateAdded").String()),
				Status:    inventory.StockStatus(raw, quantity, opts),
			}, nil
		},
		ID: func(m models.Merchandise) int { return m.ID },
		Columns: []table.Column[models.Merchandise]{
			table.TextColumn("name", "Name", true, func(m models.Merchandise) string { return m.Name }),
			table.NumberColumn("quantity", "Quantity", func(m models.Merchandise) float64 { return m.Quantity }),
			table.TextColumn("dateAdded", "Date Added", false, func(m models.Merchandise) string { return m.DateAdded }),
			table.TextColumn("status", "Status", false, func(m models.Merchandise) string { return m.Status }),
		},
		DefaultSort:   "name",
		Status:        func(m models.Merchandise) string { return m.Status },
		StatusOptions: metadata.StockStatuses(),
		NewForm:       func() *Form { return &Form{} },
		FormOf: func(m models.Merchandise) *Form {
			return &Form{Name: m.Name, Quantity: table.FormatNumber(m.Quantity), DateAdded: m.DateAdded}
		},
	}
}
