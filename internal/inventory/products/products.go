package products

import (
	"strconv"
	"strings"

	"ims/internal/client"
	"ims/internal/table"
	"ims/internal/validation"
	"ims/pkg/models"

	"github.com/tidwall/gjson"
)

const Path = "/products/products/"

var Schema = validation.Schema{
	Resource: "products",
	Fields: []validation.Field{
		{Name: "productTypeId", Label: "Product Type", Kind: validation.KindNumber, Required: true},
		{Name: "name", Label: "Product Name", Kind: validation.KindText, Required: true},
		{Name: "category", Label: "Category", Kind: validation.KindText, Required: true},
		{Name: "description", Label: "Description", Kind: validation.KindText, Required: true},
		{Name: "price", Label: "Price", Kind: validation.KindNumber, Required: true, Rules: []validation.Rule{
			validation.WithMessage(validation.Positive, "Price must be a positive number"),
		}},
		{Name: "image", Label: "Image", Kind: validation.KindFile},
	},
}

type Form struct {
	TypeID      string `json:"productTypeId" form:"productTypeId"`
	Name        string `json:"name" form:"name"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`

	Image *client.Upload `json:"-" form:"-"`
}

func (f *Form) Values() validation.Fields {
	fields := validation.Fields{
		"productTypeId": f.TypeID,
		"name":          f.Name,
		"category":      f.Category,
		"description":   f.Description,
		"price":         f.Price,
	}
	if f.Image != nil {
		fields["image"] = f.Image.Filename
	}
	return fields
}

func (f *Form) Attach(field string, upload *client.Upload) bool {
	if field != "image" {
		return false
	}
	f.Image = upload
	return true
}

// Body is always multipart; the image part is only sent when a new file was chosen.
func (f *Form) Body() (client.Body, error) {
	body := &client.MultipartBody{}
	body.Add("ProductTypeID", strings.TrimSpace(f.TypeID))
	body.Add("ProductName", strings.TrimSpace(f.Name))
	body.Add("ProductCategory", strings.TrimSpace(f.Category))
	body.Add("ProductDescription", strings.TrimSpace(f.Description))
	body.Add("ProductPrice", strings.TrimSpace(f.Price))
	body.Attach("ProductImage", f.Image)
	return body, nil
}

func Definition() *table.Definition[models.Product, *Form] {
	return &table.Definition[models.Product, *Form]{
		Name:         "products",
		Noun:         "product",
		Paths:        table.CollectionPaths(Path),
		CreateSchema: Schema,
		Normalize:    normalize,
		ID:           func(p models.Product) int { return p.ID },
		Columns: []table.Column[models.Product]{
			table.TextColumn("name", "Name", true, func(p models.Product) string { return p.Name }),
			table.TextColumn("category", "Category", false, func(p models.Product) string { return p.Category }),
			table.TextColumn("description", "Description", false, func(p models.Product) string { return p.Description }),
			table.NumberColumn("price", "Price", func(p models.Product) float64 { return p.Price }),
		},
		DefaultSort: "name",
		Filters: []table.Filter[models.Product]{
			{Key: "type", Label: "Product Type", Value: func(p models.Product) string { return strconv.Itoa(p.TypeID) }},
		},
		NewForm: func() *Form { return &Form{} },
		FormOf: func(p models.Product) *Form {
			return &Form{
				TypeID:      strconv.Itoa(p.TypeID),
				Name:        p.Name,
				Category:    p.Category,
				Description: p.Description,
				Price:       table.FormatNumber(p.Price),
			}
		},
	}
}

func normalize(raw gjson.Result) (models.Product, error) {
	id, err := table.RequireID(raw, "ProductID", "productID", "id")
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{
		ID:          id,
		TypeID:      int(table.Lookup(raw, "ProductTypeID", "productTypeID").Int()),
		Name:        table.Lookup(raw, "ProductName", "productName").String(),
		Description: table.Lookup(raw, "ProductDescription", "productDescription").String(),
		Category:    table.Lookup(raw, "ProductCategory", "productCategory").String(),
		Price:       table.Lookup(raw, "ProductPrice", "productPrice").Float(),
		Image:       table.Lookup(raw, "ProductImage", "productImage").String(),
	}, nil
}
