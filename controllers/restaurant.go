package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dinebook/middlewares"
	"dinebook/models"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Index shows the five most recently added restaurants.
func Index(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurants []models.Restaurant
		if err := db.Order("created_at desc").Limit(5).Find(&restaurants).Error; err != nil {
			logrus.Errorf("failed to fetch restaurants: %v", err)
		}

		c.HTML(http.StatusOK, "index.html", gin.H{
			"restaurants": restaurants,
			"flashes":     utils.Flashes(c),
			"user":        middlewares.CurrentUser(c),
		})
	}
}

func RestaurantDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurant models.Restaurant
		err := db.Preload("Types").Preload("Cuisines").Preload("Owners").
			First(&restaurant, "id = ?", c.Param("id")).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.Errorf("failed to fetch restaurant %s: %v", c.Param("id"), err)
			}
			utils.SetFlash(c, "Restaurant doesnot exists..")
			c.Redirect(http.StatusFound, "/")
			return
		}

		c.HTML(http.StatusOK, "detail.html", gin.H{
			"restaurant": restaurant,
			"flashes":    utils.Flashes(c),
			"user":       middlewares.CurrentUser(c),
		})
	}
}

func RestaurantCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			renderRestaurantForm(c, db, nil, nil)
			return
		}

		restaurant, typeIDs, cuisineIDs, formErrors := parseRestaurantForm(c)
		if len(formErrors) > 0 {
			renderRestaurantForm(c, db, nil, formErrors)
			return
		}

		user := middlewares.CurrentUser(c)
		if err := db.Create(&restaurant).Error; err != nil {
			logrus.Errorf("failed to create restaurant: %v", err)
			renderRestaurantForm(c, db, nil, map[string]string{"form": "Could not save restaurant"})
			return
		}
		if err := db.Model(&restaurant).Association("Owners").Append(user); err != nil {
			logrus.Errorf("failed to attach owner to restaurant %d: %v", restaurant.ID, err)
		}
		attachTaxonomies(db, &restaurant, typeIDs, cuisineIDs)

		c.Redirect(http.StatusFound, "/restaurant/"+strconv.FormatUint(uint64(restaurant.ID), 10))
	}
}

// RestaurantUpdate handles both updating and, via the delete_btn form field,
// deleting a restaurant. On top of the change_restaurant permission the
// acting user must be in this restaurant's owner set.
func RestaurantUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurant models.Restaurant
		err := db.Preload("Types").Preload("Cuisines").Preload("Owners").
			First(&restaurant, "id = ?", c.Param("id")).Error
		if err != nil {
			utils.SetFlash(c, "Restaurant doesnot exists..")
			c.Redirect(http.StatusFound, "/")
			return
		}

		user := middlewares.CurrentUser(c)
		detailURL := "/restaurant/" + strconv.FormatUint(uint64(restaurant.ID), 10)
		if !restaurant.OwnedBy(user.ID) {
			logrus.Warnf("user %d tried to modify restaurant %d without ownership", user.ID, restaurant.ID)
			utils.SetFlash(c, "You are not the owner of this restaurant!")
			c.Redirect(http.StatusFound, detailURL)
			return
		}

		if c.Request.Method == http.MethodGet {
			renderRestaurantForm(c, db, &restaurant, nil)
			return
		}

		if c.PostForm("delete_btn") != "" {
			if !user.HasPermission("delete_restaurant") {
				c.HTML(http.StatusForbidden, "forbidden.html", gin.H{"user": user})
				return
			}
			if err := db.Select(clause.Associations).Delete(&restaurant).Error; err != nil {
				logrus.Errorf("failed to delete restaurant %d: %v", restaurant.ID, err)
				utils.SetFlash(c, "Could not remove restaurant.")
				c.Redirect(http.StatusFound, detailURL)
				return
			}
			utils.SetFlash(c, "Restaurant removed.")
			c.Redirect(http.StatusFound, "/")
			return
		}

		updated, typeIDs, cuisineIDs, formErrors := parseRestaurantForm(c)
		if len(formErrors) > 0 {
			renderRestaurantForm(c, db, &restaurant, formErrors)
			return
		}

		restaurant.Name = updated.Name
		restaurant.Description = updated.Description
		restaurant.State = updated.State
		restaurant.City = updated.City
		restaurant.Street = updated.Street
		restaurant.Longitude = updated.Longitude
		restaurant.Latitude = updated.Latitude
		restaurant.Telephone = updated.Telephone
		restaurant.Website = updated.Website

		if err := db.Save(&restaurant).Error; err != nil {
			logrus.Errorf("failed to update restaurant %d: %v", restaurant.ID, err)
			renderRestaurantForm(c, db, &restaurant, map[string]string{"form": "Could not save restaurant"})
			return
		}
		replaceTaxonomies(db, &restaurant, typeIDs, cuisineIDs)

		c.Redirect(http.StatusFound, detailURL)
	}
}

func parseRestaurantForm(c *gin.Context) (models.Restaurant, []string, []string, map[string]string) {
	formErrors := map[string]string{}

	restaurant := models.Restaurant{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		State:       strings.TrimSpace(c.PostForm("state")),
		City:        strings.TrimSpace(c.PostForm("city")),
		Street:      strings.TrimSpace(c.PostForm("street")),
		Telephone:   strings.TrimSpace(c.PostForm("telephone")),
		Website:     strings.TrimSpace(c.PostForm("website")),
	}
	if restaurant.Name == "" {
		formErrors["name"] = "Name is required"
	}

	var err error
	if restaurant.Longitude, err = strconv.ParseFloat(c.DefaultPostForm("longitude", "0"), 64); err != nil {
		formErrors["longitude"] = "Longitude must be a number"
	}
	if restaurant.Latitude, err = strconv.ParseFloat(c.DefaultPostForm("latitude", "0"), 64); err != nil {
		formErrors["latitude"] = "Latitude must be a number"
	}

	return restaurant, c.PostFormArray("types"), c.PostFormArray("cuisines"), formErrors
}

func renderRestaurantForm(c *gin.Context, db *gorm.DB, restaurant *models.Restaurant, formErrors map[string]string) {
	var types []models.Type
	var cuisines []models.Cuisine
	db.Find(&types)
	db.Find(&cuisines)

	c.HTML(http.StatusOK, "restaurant_form.html", gin.H{
		"restaurant": restaurant,
		"types":      types,
		"cuisines":   cuisines,
		"errors":     formErrors,
		"flashes":    utils.Flashes(c),
		"user":       middlewares.CurrentUser(c),
	})
}

func attachTaxonomies(db *gorm.DB, restaurant *models.Restaurant, typeIDs, cuisineIDs []string) {
	if len(typeIDs) > 0 {
		var types []models.Type
		db.Find(&types, typeIDs)
		if err := db.Model(restaurant).Association("Types").Append(&types); err != nil {
			logrus.Errorf("failed to attach types to restaurant %d: %v", restaurant.ID, err)
		}
	}
	if len(cuisineIDs) > 0 {
		var cuisines []models.Cuisine
		db.Find(&cuisines, cuisineIDs)
		if err := db.Model(restaurant).Association("Cuisines").Append(&cuisines); err != nil {
			logrus.Errorf("failed to attach cuisines to restaurant %d: %v", restaurant.ID, err)
		}
	}
}

func replaceTaxonomies(db *gorm.DB, restaurant *models.Restaurant, typeIDs, cuisineIDs []string) {
	var types []models.Type
	if len(typeIDs) > 0 {
		db.Find(&types, typeIDs)
	}
	if err := db.Model(restaurant).Association("Types").Replace(&types); err != nil {
		logrus.Errorf("failed to replace types on restaurant %d: %v", restaurant.ID, err)
	}

	var cuisines []models.Cuisine
	if len(cuisineIDs) > 0 {
		db.Find(&cuisines, cuisineIDs)
	}
	if err := db.Model(restaurant).Association("Cuisines").Replace(&cuisines); err != nil {
		logrus.Errorf("failed to replace cuisines on restaurant %d: %v", restaurant.ID, err)
	}
}
