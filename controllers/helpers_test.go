package controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dinebook/config"
	"dinebook/middlewares"
	"dinebook/models"
	"dinebook/routes"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	// A named shared in-memory database keeps the schema visible across
	// gorm's pooled connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}

	return routes.SetupRouter(db, "../templates/*"), db
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// flashMessage returns the flash cookie set on the response, unescaped.
func flashMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == utils.FlashCookie {
			value, err := url.QueryUnescape(ck.Value)
			if err != nil {
				t.Fatalf("could not unescape flash cookie: %v", err)
			}
			return value
		}
	}
	return ""
}

func createUser(t *testing.T, db *gorm.DB, username, groupName string) models.User {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("could not hash password: %v", err)
	}
	user := models.User{Username: username, Email: username + "@example.com", Password: hash}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("could not create user %q: %v", username, err)
	}

	if groupName != "" {
		var codenames []string
		if groupName == models.GroupOwner {
			codenames = models.OwnerPermissions
		}
		group, err := models.EnsureGroup(db, groupName, codenames...)
		if err != nil {
			t.Fatalf("could not provision group %q: %v", groupName, err)
		}
		if err := db.Model(&user).Association("Groups").Append(group); err != nil {
			t.Fatalf("could not add user to group: %v", err)
		}
	}
	return user
}

func sessionFor(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	token, err := utils.CreateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("could not create session token: %v", err)
	}
	return &http.Cookie{Name: middlewares.SessionCookie, Value: token}
}

func createRestaurant(t *testing.T, db *gorm.DB, name string, typeNames ...string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		Name:        name,
		Description: "test restaurant",
		State:       "test",
		City:        "test",
		Street:      "test",
		Telephone:   "test",
		Website:     "test.com",
	}
	for _, tn := range typeNames {
		restaurant.Types = append(restaurant.Types, models.Type{Name: tn})
	}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("could not create restaurant %q: %v", name, err)
	}
	return restaurant
}
