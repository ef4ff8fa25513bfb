package middlewares

import (
	"net/http"
	"net/url"

	"dinebook/models"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	SessionCookie = "session_token"
	ContextUser   = "currentUser"
)

// LoadUser resolves the session cookie into a user and stashes it on the
// context. Runs on every request; anonymous requests pass through untouched.
func LoadUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.Preload("Groups.Permissions").First(&user, claims.UserID).Error; err != nil {
			c.Next()
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// RequireAuth redirects anonymous requests to the login page, preserving the
// original URL in the next parameter.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission renders a forbidden page when the user lacks the
// permission codename. Must run after RequireAuth.
func RequirePermission(codename string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		if !user.HasPermission(codename) {
			c.HTML(http.StatusForbidden, "forbidden.html", gin.H{
				"user": user,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
