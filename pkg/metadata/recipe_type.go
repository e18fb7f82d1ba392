package metadata

import (
	"fmt"
	"strings"
)

type RecipeType string

const (
	RecipeDrink RecipeType = "drink"
	RecipeFood  RecipeType = "food"
)

var recipeCategories = map[RecipeType][]string{
	RecipeDrink: {
		"Barista Choice",
		"Specialty Coffee",
		"Premium Coffee",
		"Non-Coffee",
		"Frappe",
		"Sparkling Series",
		"Milktea",
	},
	RecipeFood: {
		"Rice Meals",
		"Pasta",
		"Snacks",
		"Sandwich",
	},
}

func (t RecipeType) IsValid() bool {
	switch t {
	case RecipeDrink, RecipeFood:
		return true
	default:
		return false
	}
}

func NewRecipeType(value string) (RecipeType, error) {
	recipeType := RecipeType(strings.ToLower(strings.TrimSpace(value)))
	if !recipeType.IsValid() {
		return recipeType, fmt.Errorf("value not valid, only valid values are: %s, %s", RecipeDrink, RecipeFood)
	}

	return recipeType, nil
}

// Categories lists the menu categories offered for recipes of this type.
func (t RecipeType) Categories() []string {
	return append([]string(nil), recipeCategories[t]...)
}

func (t RecipeType) String() string {
	return string(t)
}

func RecipeTypes() []string {
	return []string{RecipeDrink.String(), RecipeFood.String()}
}
