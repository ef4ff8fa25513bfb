package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the full schema. Shared by main and the
// test servers.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{}, &Group{}, &Permission{},
		&Restaurant{}, &Type{}, &Cuisine{}, &Food{},
		&Booking{},
	)
}
