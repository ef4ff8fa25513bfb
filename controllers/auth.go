package controllers

import (
	"net/http"
	"strings"

	"dinebook/middlewares"
	"dinebook/models"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Register handles the two signup flows: /register/customer and
// /register/owner. The group named after the flow is provisioned lazily; the
// owner group receives its permission set only at first creation.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		usertype := c.Param("usertype")
		if usertype != models.GroupCustomer && usertype != models.GroupOwner {
			utils.SetFlash(c, "Unknown registration type.")
			c.Redirect(http.StatusFound, "/")
			return
		}

		if c.Request.Method == http.MethodGet {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"usertype": usertype,
				"flashes":  utils.Flashes(c),
			})
			return
		}

		var input struct {
			Username  string `form:"username" binding:"required"`
			FirstName string `form:"first_name"`
			LastName  string `form:"last_name"`
			Email     string `form:"email" binding:"required,email"`
			Password  string `form:"password1" binding:"required,min=6"`
			Confirm   string `form:"password2" binding:"required"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"usertype": usertype,
				"error":    err.Error(),
			})
			return
		}
		if input.Password != input.Confirm {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"usertype": usertype,
				"error":    "Passwords do not match",
			})
			return
		}

		var existing models.User
		if err := db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"usertype": usertype,
				"error":    "Username already taken",
			})
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			logrus.Errorf("failed to hash password: %v", err)
			c.HTML(http.StatusOK, "register.html", gin.H{
				"usertype": usertype,
				"error":    "Could not create account",
			})
			return
		}

		user := models.User{
			Username:  strings.TrimSpace(input.Username),
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
			Email:     strings.TrimSpace(input.Email),
			Password:  hashed,
		}
		if err := db.Create(&user).Error; err != nil {
			logrus.Errorf("failed to create user: %v", err)
			c.HTML(http.StatusOK, "register.html", gin.H{
				"usertype": usertype,
				"error":    "Could not create account",
			})
			return
		}

		var codenames []string
		if usertype == models.GroupOwner {
			codenames = models.OwnerPermissions
		}
		group, err := models.EnsureGroup(db, usertype, codenames...)
		if err != nil {
			logrus.Errorf("failed to provision group %q: %v", usertype, err)
		} else if err := db.Model(&user).Association("Groups").Append(group); err != nil {
			logrus.Errorf("failed to add user %d to group %q: %v", user.ID, usertype, err)
		}

		utils.SetFlash(c, "Registration successful. Please log in.")
		c.Redirect(http.StatusFound, "/login")
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.HTML(http.StatusOK, "login.html", gin.H{
				"next":    c.Query("next"),
				"flashes": utils.Flashes(c),
			})
			return
		}

		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil ||
			!utils.CheckPasswordHash(password, user.Password) {
			c.HTML(http.StatusOK, "login.html", gin.H{
				"next":  c.PostForm("next"),
				"error": "Invalid username or password",
			})
			return
		}

		token, err := utils.CreateToken(user.ID, user.Username)
		if err != nil {
			logrus.Errorf("failed to create session token: %v", err)
			c.HTML(http.StatusOK, "login.html", gin.H{
				"next":  c.PostForm("next"),
				"error": "Could not log in",
			})
			return
		}

		c.SetCookie(middlewares.SessionCookie, token, 24*60*60, "/", "", false, true)

		next := c.PostForm("next")
		if !isLocalPath(next) {
			next = "/"
		}
		c.Redirect(http.StatusFound, next)
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/")
	}
}
