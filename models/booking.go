package models

import "time"

type Booking struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Reference    string     `gorm:"size:36;index" json:"reference"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	UserID       uint       `gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user"`
	RestaurantID uint       `gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant"`
	BookingAt    time.Time  `json:"booking_at"`
	PartySize    int        `json:"party_size"`
	Message      string     `gorm:"type:text" json:"message,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
