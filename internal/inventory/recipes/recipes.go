// Package recipes manages drink and food recipes with their ingredient and supply lines.
package recipes

import (
	"strconv"
	"strings"

	"ims/internal/client"
	"ims/internal/table"
	"ims/internal/validation"
	"ims/pkg/metadata"
	"ims/pkg/models"

	"github.com/tidwall/gjson"
)

const Path = "/recipes/recipes/"

const MessageNoIngredients = "At least one ingredient is required"

var Schema = validation.Schema{
	Resource: "recipes",
	Fields: []validation.Field{
		{Name: "name", Label: "Recipe Name", Kind: validation.KindText, Required: true},
		{Name: "type", Label: "Type", Kind: validation.KindEnum, Required: true, Options: metadata.RecipeTypes()},
		{Name: "category", Label: "Category", Kind: validation.KindText, Required: true, Rules: []validation.Rule{
			validation.OneOfWhen("type", map[string][]string{
				metadata.RecipeDrink.String(): metadata.RecipeDrink.Categories(),
				metadata.RecipeFood.String():  metadata.RecipeFood.Categories(),
			}),
		}},
		{Name: "description", Label: "Description", Kind: validation.KindText, Required: true},
		{Name: "ingredients", Label: "Ingredients", Kind: validation.KindList, Rules: []validation.Rule{
			validation.NotEmpty(MessageNoIngredients),
		}},
		{Name: "supplies", Label: "Supplies", Kind: validation.KindList},
	},
}

// Line is one ingredient or supply of a recipe, as entered.
type Line struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Measurement string `json:"measurement"`
}

type Form struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	Type        string `json:"type" form:"type"`
	Ingredients []Line `json:"ingredients" form:"-"`
	Supplies    []Line `json:"supplies" form:"-"`
}

func (f *Form) Values() validation.Fields {
	return validation.Fields{
		"name":        f.Name,
		"description": f.Description,
		"category":    f.Category,
		"type":        f.Type,
		"ingredients": count(filled(f.Ingredients)),
		"supplies":    count(filled(f.Supplies)),
	}
}

func (f *Form) Body() (client.Body, error) {
	return client.JSONBody{Value: map[string]interface{}{
		"name":        strings.TrimSpace(f.Name),
		"description": strings.TrimSpace(f.Description),
		"category":    strings.TrimSpace(f.Category),
		"type":        strings.ToLower(strings.TrimSpace(f.Type)),
		"ingredients": filled(f.Ingredients),
		"supplies":    filled(f.Supplies),
	}}, nil
}

// filled drops lines left without a name.
func filled(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line.Name) == "" && line.ID == "" {
			continue
		}
		line.Name = strings.TrimSpace(line.Name)
		line.Amount = strings.TrimSpace(line.Amount)
		line.Measurement = strings.TrimSpace(line.Measurement)
		out = append(out, line)
	}
	return out
}

func count(lines []Line) string {
	if len(lines) == 0 {
		return ""
	}
	return strconv.Itoa(len(lines))
}

func Definition() *table.Definition[models.Recipe, *Form] {
	return &table.Definition[models.Recipe, *Form]{
		Name:         "recipes",
		Noun:         "recipe",
		Paths:        table.CollectionPaths(Path),
		CreateSchema: Schema,
		Normalize:    normalize,
		ID:           func(r models.Recipe) int { return r.ID },
		Columns: []table.Column[models.Recipe]{
			table.TextColumn("name", "Name", true, func(r models.Recipe) string { return r.Name }),
			table.TextColumn("category", "Category", true, func(r models.Recipe) string { return r.Category }),
			table.TextColumn("description", "Description", false, func(r models.Recipe) string { return r.Description }),
			table.TextColumn("type", "Type", false, func(r models.Recipe) string { return r.Type }),
		},
		DefaultSort: "name",
		Filters: []table.Filter[models.Recipe]{
			{Key: "type", Label: "Type", Options: metadata.RecipeTypes(), Value: func(r models.Recipe) string { return r.Type }},
		},
		NewForm: func() *Form { return &Form{} },
		FormOf:  formOf,
	}
}

func formOf(r models.Recipe) *Form {
	lines := func(src []models.RecipeLine) []Line {
		out := make([]Line, 0, len(src))
		for _, l := range src {
			line := Line{Name: l.Name, Amount: table.FormatNumber(l.Amount), Measurement: l.Measurement}
			if l.ID > 0 {
				line.ID = strconv.Itoa(l.ID)
			}
			out = append(out, line)
		}
		return out
	}

	return &Form{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		Ingredients: lines(r.Ingredients),
		Supplies:    lines(r.Supplies),
	}
}

func normalize(raw gjson.Result) (models.Recipe, error) {
	id, err := table.RequireID(raw, "RecipeID", "recipeID", "id")
	if err != nil {
		return models.Recipe{}, err
	}

	recipe := models.Recipe{
		ID:          id,
		Name:        table.Lookup(raw, "RecipeName", "name").String(),
		Description: table.Lookup(raw, "Description", "description").String(),
		Category:    table.Lookup(raw, "Category", "category").String(),
		Type:        strings.ToLower(table.Lookup(raw, "Type", "type").String()),
		Ingredients: normalizeLines(table.Lookup(raw, "Ingredients", "ingredients"), "IngredientID", "IngredientName"),
		Supplies:    normalizeLines(table.Lookup(raw, "Materials", "Supplies", "supplies"), "MaterialID", "MaterialName"),
	}

	if recipe.Type == "" {
		recipe.Type = typeOfCategory(recipe.Category)
	}

	return recipe, nil
}

func normalizeLines(raw gjson.Result, idKey, nameKey string) []models.RecipeLine {
	lines := []models.RecipeLine{}
	for _, entry := range raw.Array() {
		lines = append(lines, models.RecipeLine{
			ID:          int(table.Lookup(entry, idKey, "id").Int()),
			Name:        table.Lookup(entry, nameKey, "name").String(),
			Amount:      table.Lookup(entry, "Amount", "amount", "Quantity", "quantity").Float(),
			Measurement: table.Lookup(entry, "Measurement", "measurement", "unit").String(),
		})
	}
	return lines
}

// typeOfCategory infers the recipe type for services that only store the category.
func typeOfCategory(category string) string {
	for _, recipeType := range []metadata.RecipeType{metadata.RecipeDrink, metadata.RecipeFood} {
		for _, c := range recipeType.Categories() {
			if strings.EqualFold(c, category) {
				return recipeType.String()
			}
		}
	}
	return ""
}
