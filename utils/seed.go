package utils

import (
	"dinebook/config"
	"dinebook/models"
)

// SeedDemoRestaurants loads a handful of restaurants so a fresh dev database
// has something to browse. Enabled with seed.demo in the config.
func SeedDemoRestaurants() {
	restaurants := []models.Restaurant{
		{
			Name:        "Everest Kitchen",
			Description: "Family-run kitchen serving momos and thali sets.",
			State:       "Bagmati",
			City:        "Kathmandu",
			Street:      "Thamel Marg",
			Longitude:   85.312950,
			Latitude:    27.717245,
			Telephone:   "01-4412345",
			Website:     "https://everestkitchen.example.com",
			Types:       []models.Type{{Name: "Diner"}},
			Cuisines:    []models.Cuisine{{Name: "Nepali"}},
		},
		{
			Name:        "Lakeside Grill",
			Description: "Grilled fish and sunset views over Phewa lake.",
			State:       "Gandaki",
			City:        "Pokhara",
			Street:      "Lakeside Road",
			Longitude:   83.958755,
			Latitude:    28.209538,
			Telephone:   "061-465789",
			Website:     "https://lakesidegrill.example.com",
			Types:       []models.Type{{Name: "Grill"}},
			Cuisines:    []models.Cuisine{{Name: "Continental"}},
		},
		{
			Name:        "Namaste Diner",
			Description: "Quick plates near the bus park, open late.",
			State:       "Bagmati",
			City:        "Bhaktapur",
			Street:      "Durbar Square Road",
			Longitude:   85.428144,
			Latitude:    27.671491,
			Telephone:   "01-6612233",
			Website:     "https://namastediner.example.com",
			Types:       []models.Type{{Name: "Fast Food"}},
			Cuisines:    []models.Cuisine{{Name: "Newari"}},
		},
	}

	for _, r := range restaurants {
		var existing models.Restaurant
		if err := config.DB.Where("name = ?", r.Name).First(&existing).Error; err != nil {
			config.DB.Create(&r)
		}
	}
}
