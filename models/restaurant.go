package models

import "time"

type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	State       string    `gorm:"size:100" json:"state"`
	City        string    `gorm:"size:100" json:"city"`
	Street      string    `gorm:"size:100" json:"street"`
	Longitude   float64   `gorm:"type:decimal(9,6)" json:"longitude"`
	Latitude    float64   `gorm:"type:decimal(9,6)" json:"latitude"`
	Telephone   string    `gorm:"size:100" json:"telephone"`
	Website     string    `gorm:"size:200" json:"website"`
	Types       []Type    `gorm:"many2many:restaurant_types;" json:"types,omitempty"`
	Cuisines    []Cuisine `gorm:"many2many:restaurant_cuisines;" json:"cuisines,omitempty"`
	Owners      []User    `gorm:"many2many:restaurant_owners;" json:"owners,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OwnedBy reports whether the user is in the restaurant's owner set. Owners
// must have been preloaded.
func (r *Restaurant) OwnedBy(userID uint) bool {
	for _, o := range r.Owners {
		if o.ID == userID {
			return true
		}
	}
	return false
}
