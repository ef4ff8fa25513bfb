package controllers

import (
	"net/http"

	"dinebook/middlewares"
	"dinebook/models"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Profile shows owned restaurants to owners and bookings to everyone else.
func Profile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middlewares.CurrentUser(c)

		if user.InGroup(models.GroupOwner) {
			var restaurants []models.Restaurant
			err := db.
				Joins("JOIN restaurant_owners ON restaurant_owners.restaurant_id = restaurants.id").
				Where("restaurant_owners.user_id = ?", user.ID).
				Order("restaurants.created_at desc").
				Find(&restaurants).Error
			if err != nil {
				logrus.Errorf("failed to fetch restaurants for owner %d: %v", user.ID, err)
			}

			c.HTML(http.StatusOK, "profile.html", gin.H{
				"restaurants": restaurants,
				"isOwner":     true,
				"flashes":     utils.Flashes(c),
				"user":        user,
			})
			return
		}

		var bookings []models.Booking
		err := db.Preload("Restaurant").
			Where("user_id = ?", user.ID).
			Order("created_at desc").
			Find(&bookings).Error
		if err != nil {
			logrus.Errorf("failed to fetch bookings for user %d: %v", user.ID, err)
		}

		c.HTML(http.StatusOK, "profile.html", gin.H{
			"bookings": bookings,
			"isOwner":  false,
			"flashes":  utils.Flashes(c),
			"user":     user,
		})
	}
}
