package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	GroupOwner    = "owner"
	GroupCustomer = "customer"
)

// OwnerPermissions is the permission set granted to the "owner" group the
// first time it is created.
var OwnerPermissions = []string{
	"add_restaurant", "change_restaurant", "delete_restaurant",
	"add_type", "change_type", "delete_type",
	"add_cuisine", "change_cuisine", "delete_cuisine",
}

type Group struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"uniqueIndex;size:150;not null" json:"name"`
	Permissions []Permission `gorm:"many2many:group_permissions;" json:"permissions,omitempty"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Permission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Codename string `gorm:"uniqueIndex;size:100;not null" json:"codename"`
	Name     string `gorm:"size:255" json:"name"`
}

// EnsureGroup returns the named group, creating it first if needed. The
// permission codenames are granted only at the moment the group row is
// created; an existing group is returned untouched, so repeated calls are
// idempotent.
func EnsureGroup(db *gorm.DB, name string, codenames ...string) (*Group, error) {
	var group Group
	err := db.Preload("Permissions").Where("name = ?", name).First(&group).Error
	if err == nil {
		return &group, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	group = Group{Name: name}
	if err := db.Create(&group).Error; err != nil {
		return nil, err
	}

	for _, code := range codenames {
		var perm Permission
		err := db.Where("codename = ?", code).First(&perm).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			perm = Permission{Codename: code, Name: permissionLabel(code)}
			err = db.Create(&perm).Error
		}
		if err != nil {
			return nil, err
		}
		if err := db.Model(&group).Association("Permissions").Append(&perm); err != nil {
			return nil, err
		}
	}
	return &group, nil
}

func permissionLabel(codename string) string {
	return "Can " + strings.ReplaceAll(codename, "_", " ")
}
