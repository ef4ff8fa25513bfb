package models

import (
	"time"
)

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Username  string  `gorm:"uniqueIndex;size:150;not null" json:"username"`
	FirstName string  `gorm:"size:100" json:"first_name"`
	LastName  string  `gorm:"size:100" json:"last_name,omitempty"`
	Email     string  `gorm:"size:254" json:"email"`
	Password  string  `gorm:"not null" json:"-"` // bcrypt hash
	Groups    []Group `gorm:"many2many:user_groups;" json:"groups,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName is what templates show next to bookings and owner lists.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// InGroup reports whether the user belongs to the named group. Groups must
// have been preloaded.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// HasPermission reports whether any of the user's groups carries the
// permission codename. Groups.Permissions must have been preloaded.
func (u *User) HasPermission(codename string) bool {
	for _, g := range u.Groups {
		for _, p := range g.Permissions {
			if p.Codename == codename {
				return true
			}
		}
	}
	return false
}
