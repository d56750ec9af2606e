package parser

import (
	"maitred/internal/menu"
	"maitred/internal/models"
)

func price(v float64) *float64 { return &v }

func calories(v int) *int { return &v }

// testCatalog builds the catalog used across the parser tests.
func testCatalog() *menu.Catalog {
	return menu.New([]models.MenuItem{
		{
			Name:            "3 Finger Combo",
			Category:        models.CategoryCombos,
			Price:           price(8.99),
			ComboComponents: []string{"Chicken Fingers", "Fries", "Texas Toast", "Cane's Sauce"},
		},
		{
			Name:            "Caniac Combo",
			Category:        models.CategoryCombos,
			Price:           price(15.99),
			ComboComponents: []string{"Chicken Fingers", "Fries", "Texas Toast", "Coleslaw", "Cane's Sauce"},
		},
		{
			Name:       "Sweet Tea",
			Category:   models.CategoryDrinks,
			IceOptions: []string{"Cane's Ice", "No Ice"},
			Sizes: []models.SizeOption{
				{Label: "Small", Price: 1.99, Calories: calories(120)},
				{Label: "Large", Price: 2.99, Calories: calories(190)},
			},
		},
		{
			Name:         "Unsweet Tea",
			Category:     models.CategoryDrinks,
			IceOptions:   []string{"Cane's Ice", "No Ice"},
			AddonChoices: []string{"Sugar", "Splenda", "Lemon"},
			Sizes: []models.SizeOption{
				{Label: "Small", Price: 1.99},
				{Label: "Large", Price: 2.99},
			},
		},
		{
			Name:       "Lemonade",
			Category:   models.CategoryDrinks,
			IceOptions: []string{"Cane's Ice", "No Ice"},
			Sizes: []models.SizeOption{
				{Label: "Small", Price: 2.49},
				{Label: "Large", Price: 3.49},
			},
		},
		{
			Name:     "Fountain Drink",
			Category: models.CategoryDrinks,
			Sizes: []models.SizeOption{
				{Label: "Regular", Price: 1.99},
				{Label: "Large", Price: 2.49},
			},
		},
		{Name: "Chicken Fingers", Category: models.CategoryExtras, Price: price(1.89), Calories: calories(130)},
		{Name: "Fries", Category: models.CategoryExtras, Price: price(1.00), Calories: calories(390)},
		{Name: "Texas Toast", Category: models.CategoryExtras, Price: price(1.00), Calories: calories(150)},
		{Name: "Coleslaw", Category: models.CategoryExtras, Price: price(1.49)},
		{Name: "Cane's Sauce", Category: models.CategoryExtras, Price: price(0.59)},
	})
}
