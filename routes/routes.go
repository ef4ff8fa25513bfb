package routes

import (
	"dinebook/controllers"
	"dinebook/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, templatesGlob string) *gin.Engine {
	r := gin.Default()

	r.LoadHTMLGlob(templatesGlob)
	r.Use(middlewares.LoadUser(db))

	// Public pages
	r.GET("/", controllers.Index(db))
	r.GET("/restaurant", controllers.Index(db))
	r.GET("/restaurant/:id", controllers.RestaurantDetail(db))
	r.GET("/restaurant/search", controllers.Search())
	r.POST("/restaurant/search", controllers.Search())
	r.GET("/restaurant/search/:text", controllers.SearchListing(db))

	// Booking create is auth-checked inside the handler: an anonymous POST
	// is bounced back to the form with a message, not sent to login.
	r.GET("/restaurant/:id/booking", controllers.BookingCreate(db))
	r.POST("/restaurant/:id/booking", controllers.BookingCreate(db))

	// Booking mutation checks existence only, matching the original flows.
	booking := r.Group("/restaurant/booking", middlewares.RequireAuth())
	{
		booking.GET("/update/:id", controllers.BookingUpdate(db))
		booking.POST("/update/:id", controllers.BookingUpdate(db))
		booking.GET("/delete/:id", controllers.BookingDelete(db))
		booking.POST("/delete/:id", controllers.BookingDelete(db))
	}

	// Restaurant and taxonomy mutation, permission-gated
	auth := r.Group("", middlewares.RequireAuth())
	{
		create := auth.Group("", middlewares.RequirePermission("add_restaurant"))
		create.GET("/restaurant/create", controllers.RestaurantCreate(db))
		create.POST("/restaurant/create", controllers.RestaurantCreate(db))

		update := auth.Group("", middlewares.RequirePermission("change_restaurant"))
		update.GET("/restaurant/update/:id", controllers.RestaurantUpdate(db))
		update.POST("/restaurant/update/:id", controllers.RestaurantUpdate(db))

		types := auth.Group("", middlewares.RequirePermission("add_type"))
		types.GET("/restaurant/types/create", controllers.TypeCreate(db))
		types.POST("/restaurant/types/create", controllers.TypeCreate(db))

		cuisines := auth.Group("", middlewares.RequirePermission("add_cuisine"))
		cuisines.GET("/restaurant/cuisines/create", controllers.CuisineCreate(db))
		cuisines.POST("/restaurant/cuisines/create", controllers.CuisineCreate(db))

		auth.GET("/user/profile", controllers.Profile(db))
	}

	// Accounts
	r.GET("/register/:usertype", controllers.Register(db))
	r.POST("/register/:usertype", controllers.Register(db))
	r.GET("/login", controllers.Login(db))
	r.POST("/login", controllers.Login(db))
	r.GET("/logout", controllers.Logout())

	return r
}
