package controllers

import (
	"errors"
	"net/http"
	"strings"

	"dinebook/middlewares"
	"dinebook/models"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// The type and cuisine popup forms are the same form over different
// entities, so the handler is generic over a validate/save pair.

type popupForm struct {
	kind     string
	validate func(name string) error
	save     func(db *gorm.DB, name string) error
}

func TypeCreate(db *gorm.DB) gin.HandlerFunc {
	return popupCreate(db, popupForm{
		kind:     "type",
		validate: requireName,
		save: func(db *gorm.DB, name string) error {
			return db.Create(&models.Type{Name: name}).Error
		},
	})
}

func CuisineCreate(db *gorm.DB) gin.HandlerFunc {
	return popupCreate(db, popupForm{
		kind:     "cuisine",
		validate: requireName,
		save: func(db *gorm.DB, name string) error {
			return db.Create(&models.Cuisine{Name: name}).Error
		},
	})
}

func popupCreate(db *gorm.DB, form popupForm) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.HTML(http.StatusOK, "popup_form.html", gin.H{
				"kind": form.kind,
				"user": middlewares.CurrentUser(c),
			})
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		if err := form.validate(name); err != nil {
			c.HTML(http.StatusOK, "popup_form.html", gin.H{
				"kind":  form.kind,
				"name":  name,
				"error": err.Error(),
				"user":  middlewares.CurrentUser(c),
			})
			return
		}

		if err := form.save(db, name); err != nil {
			logrus.Errorf("failed to create %s %q: %v", form.kind, name, err)
			c.HTML(http.StatusOK, "popup_form.html", gin.H{
				"kind":  form.kind,
				"name":  name,
				"error": "Could not save",
				"user":  middlewares.CurrentUser(c),
			})
			return
		}

		utils.SetFlash(c, "Created "+form.kind+" "+name+".")
		c.Redirect(http.StatusFound, nextTarget(c, "/restaurant/create"))
	}
}

func requireName(name string) error {
	if name == "" {
		return errors.New("Name is required")
	}
	if len(name) > 100 {
		return errors.New("Name is too long")
	}
	return nil
}
