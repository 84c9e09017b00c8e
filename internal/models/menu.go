package models

// MenuIngredient is an optional paid add-on for a menu item.
type MenuIngredient struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuItem is a catalog entry with a base price and available add-ons.
type MenuItem struct {
	Name        string           `json:"name"`
	Price       float64          `json:"price"`
	Ingredients []MenuIngredient `json:"ingredients"`
}

// Menu is the public catalog, grouped by category. It is configuration
// data, not user-mutable state.
type Menu struct {
	Plats    []MenuItem `json:"plats"`
	Desserts []MenuItem `json:"desserts"`
	Boissons []MenuItem `json:"boissons"`
}

// RestaurantInfo is the public contact block returned with the menu.
type RestaurantInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
}

// DefaultMenu returns the process-wide menu catalog.
func DefaultMenu() Menu {
	return Menu{
		Plats: []MenuItem{
			{
				Name:  "Smoky Grandma's Chicken",
				Price: 1000,
				Ingredients: []MenuIngredient{
					{Name: "Fromage extra", Price: 150},
					{Name: "Bacon", Price: 200},
					{Name: "Sauce piquante", Price: 50},
					{Name: "Salade extra", Price: 100},
				},
			},
			{
				Name:  "Pulled Pork Sandwich",
				Price: 1000,
				Ingredients: []MenuIngredient{
					{Name: "Cheddar", Price: 150},
					{Name: "Cornichons", Price: 50},
					{Name: "Tomates", Price: 75},
				},
			},
			{
				Name:  "Texas Brisket",
				Price: 1000,
				Ingredients: []MenuIngredient{
					{Name: "Sauce BBQ extra", Price: 75},
					{Name: "Maïs grillé", Price: 125},
				},
			},
			{
				Name:  "Route 66 Ribs",
				Price: 1100,
				Ingredients: []MenuIngredient{
					{Name: "Sauce miel", Price: 100},
					{Name: "Frites maison", Price: 200},
				},
			},
			{
				Name:  "Grilled Chicken Ranchero",
				Price: 1100,
				Ingredients: []MenuIngredient{
					{Name: "Guacamole", Price: 175},
					{Name: "Jalapeños", Price: 75},
				},
			},
			{
				Name:  "Cowboy Steak & Onion",
				Price: 1200,
				Ingredients: []MenuIngredient{
					{Name: "Beurre à l'ail", Price: 100},
					{Name: "Champignons grillés", Price: 150},
				},
			},
		},
		Desserts: []MenuItem{
			{Name: "Brownie Maison", Price: 300, Ingredients: []MenuIngredient{}},
			{Name: "Donuts Speculos", Price: 300, Ingredients: []MenuIngredient{}},
			{Name: "Muffin Poire Chocolat", Price: 400, Ingredients: []MenuIngredient{}},
			{Name: "Tarte Pomme & Poire", Price: 400, Ingredients: []MenuIngredient{}},
		},
		Boissons: []MenuItem{
			{Name: "Grandma's Coffee", Price: 200, Ingredients: []MenuIngredient{}},
			{Name: "Diabolo Plaisir", Price: 500, Ingredients: []MenuIngredient{}},
			{Name: "Pastèque Juice", Price: 500, Ingredients: []MenuIngredient{}},
			{Name: "Smoothie Exotique", Price: 500, Ingredients: []MenuIngredient{}},
		},
	}
}

// DefaultRestaurantInfo returns the contact block shown on the public page.
func DefaultRestaurantInfo() RestaurantInfo {
	return RestaurantInfo{
		Name:        "Texan Rex's Diner",
		Description: "Authentic BBQ & Steakhouse",
		Phone:       "+33 1 23 45 67 89",
	}
}
