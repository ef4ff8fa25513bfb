package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"dinebook/config"
	"dinebook/middlewares"
	"dinebook/models"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var bookingTimeLayouts = []string{
	"2006-01-02T15:04", // html datetime-local
	"2006-01-02 15:04",
	"2006-01-02",
}

// BookingCreate renders and processes the booking form for a restaurant.
// Any authenticated user may book; an anonymous POST is bounced back to the
// form with a message instead of being sent to the login page.
func BookingCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurant models.Restaurant
		if err := db.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
			utils.SetFlash(c, "Restaurant doesnot exists..")
			c.Redirect(http.StatusFound, "/")
			return
		}

		formURL := "/restaurant/" + strconv.FormatUint(uint64(restaurant.ID), 10) + "/booking"
		user := middlewares.CurrentUser(c)

		if c.Request.Method == http.MethodGet {
			c.HTML(http.StatusOK, "booking_form.html", gin.H{
				"restaurant": restaurant,
				"action":     formURL,
				"flashes":    utils.Flashes(c),
				"user":       user,
			})
			return
		}

		if user == nil {
			utils.SetFlash(c, "You must Login to make bookings!!")
			c.Redirect(http.StatusFound, formURL)
			return
		}

		booking, formErrors := parseBookingForm(c)
		if len(formErrors) > 0 {
			c.HTML(http.StatusOK, "booking_form.html", gin.H{
				"restaurant": restaurant,
				"action":     formURL,
				"errors":     formErrors,
				"booking":    booking,
				"user":       user,
			})
			return
		}

		booking.UserID = user.ID
		booking.RestaurantID = restaurant.ID
		booking.Reference = uuid.NewString()
		if err := db.Create(&booking).Error; err != nil {
			logrus.Errorf("failed to create booking for restaurant %d: %v", restaurant.ID, err)
			c.HTML(http.StatusOK, "booking_form.html", gin.H{
				"restaurant": restaurant,
				"action":     formURL,
				"errors":     map[string]string{"form": "Could not save booking"},
				"booking":    booking,
				"user":       user,
			})
			return
		}

		utils.SetFlash(c, "Booking created.")
		c.Redirect(http.StatusFound, nextTarget(c, "/"))
	}
}

func BookingUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking models.Booking
		err := db.Preload("Restaurant").First(&booking, "id = ?", c.Param("id")).Error
		if err != nil {
			utils.SetFlash(c, "Booking doesnot exists..")
			c.Redirect(http.StatusFound, config.C.BookingFallback)
			return
		}

		user := middlewares.CurrentUser(c)
		if c.Request.Method == http.MethodGet {
			c.HTML(http.StatusOK, "booking_form.html", gin.H{
				"restaurant": booking.Restaurant,
				"booking":    booking,
				"action":     "/restaurant/booking/update/" + strconv.FormatUint(uint64(booking.ID), 10),
				"flashes":    utils.Flashes(c),
				"user":       user,
			})
			return
		}

		updated, formErrors := parseBookingForm(c)
		if len(formErrors) > 0 {
			c.HTML(http.StatusOK, "booking_form.html", gin.H{
				"restaurant": booking.Restaurant,
				"booking":    booking,
				"action":     "/restaurant/booking/update/" + strconv.FormatUint(uint64(booking.ID), 10),
				"errors":     formErrors,
				"user":       user,
			})
			return
		}

		booking.Name = updated.Name
		booking.BookingAt = updated.BookingAt
		booking.PartySize = updated.PartySize
		booking.Message = updated.Message
		if err := db.Save(&booking).Error; err != nil {
			logrus.Errorf("failed to update booking %d: %v", booking.ID, err)
		} else {
			utils.SetFlash(c, "Booking updated.")
		}
		c.Redirect(http.StatusFound, nextTarget(c, config.C.BookingFallback))
	}
}

func BookingDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking models.Booking
		err := db.First(&booking, "id = ?", c.Param("id")).Error
		if err != nil {
			utils.SetFlash(c, "Booking doesnot exists..")
			c.Redirect(http.StatusFound, nextTarget(c, config.C.BookingFallback))
			return
		}

		if err := db.Delete(&booking).Error; err != nil {
			logrus.Errorf("failed to delete booking %d: %v", booking.ID, err)
			utils.SetFlash(c, "Could not remove booking.")
		} else {
			utils.SetFlash(c, "Booking removed.")
		}
		c.Redirect(http.StatusFound, nextTarget(c, config.C.BookingFallback))
	}
}

func parseBookingForm(c *gin.Context) (models.Booking, map[string]string) {
	formErrors := map[string]string{}

	booking := models.Booking{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if booking.Name == "" {
		formErrors["name"] = "Name is required"
	}

	size, err := strconv.Atoi(strings.TrimSpace(c.PostForm("party_size")))
	if err != nil || size < 1 {
		formErrors["party_size"] = "Party size must be a whole number"
	}
	booking.PartySize = size

	raw := strings.TrimSpace(c.PostForm("booking_at"))
	if raw == "" {
		formErrors["booking_at"] = "Booking date is required"
	} else {
		parsed := false
		for _, layout := range bookingTimeLayouts {
			if at, err := time.Parse(layout, raw); err == nil {
				booking.BookingAt = at
				parsed = true
				break
			}
		}
		if !parsed {
			formErrors["booking_at"] = "Booking date is not a valid date"
		}
	}

	return booking, formErrors
}

// nextTarget picks the redirect target after a booking mutation: the next
// form field or query parameter when given, otherwise the referring page,
// otherwise the fallback. Only site-local paths are followed.
func nextTarget(c *gin.Context, fallback string) string {
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}
	if next == "" {
		next = c.GetHeader("Referer")
	}
	if isLocalPath(next) {
		return next
	}
	return fallback
}

func isLocalPath(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//")
}
