package controllers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"dinebook/models"
)

func TestIndexWithoutRestaurants(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "No restaurant added") {
		t.Errorf("empty index should show the no-restaurant message")
	}
}

func TestIndexShowsFiveNewestRestaurants(t *testing.T) {
	r, db := newTestServer(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 6; i++ {
		restaurant := createRestaurant(t, db, fmt.Sprintf("Place %d", i))
		err := db.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Hour)).Error
		if err != nil {
			t.Fatalf("could not backdate restaurant: %v", err)
		}
	}

	w := get(r, "/")
	body := w.Body.String()

	if strings.Contains(body, ">Place 1</a>") {
		t.Errorf("oldest restaurant should fall off the index")
	}
	for i := 2; i <= 6; i++ {
		if !strings.Contains(body, fmt.Sprintf(">Place %d</a>", i)) {
			t.Errorf("index missing Place %d", i)
		}
	}

	// Newest first.
	if strings.Index(body, ">Place 6</a>") > strings.Index(body, ">Place 2</a>") {
		t.Errorf("index is not ordered by descending creation time")
	}
}

func TestDetailMissingRestaurantRedirects(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(r, "/restaurant/1")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Errorf("redirect = %q, want /", got)
	}
	if got := flashMessage(t, w); got != "Restaurant doesnot exists.." {
		t.Errorf("flash = %q, want %q", got, "Restaurant doesnot exists..")
	}
}

func TestDetailShowsRestaurant(t *testing.T) {
	r, db := newTestServer(t)
	restaurant := createRestaurant(t, db, "Test Restaurant", "Diner")

	w := get(r, fmt.Sprintf("/restaurant/%d", restaurant.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Test Restaurant") || !strings.Contains(body, "Diner") {
		t.Errorf("detail page missing restaurant data")
	}
}

func TestRestaurantCreateRequiresLogin(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(r, "/restaurant/create")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("redirect = %q, want login page", loc)
	}
}

func TestRestaurantCreateForbiddenForCustomers(t *testing.T) {
	r, db := newTestServer(t)
	customer := createUser(t, db, "diner", models.GroupCustomer)

	w := get(r, "/restaurant/create", sessionFor(t, customer))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRestaurantCreateAttachesCreatorAsOwner(t *testing.T) {
	r, db := newTestServer(t)
	owner := createUser(t, db, "chef", models.GroupOwner)

	form := url.Values{
		"name":        {"New Place"},
		"description": {"fresh"},
		"state":       {"test"},
		"city":        {"test"},
		"street":      {"test"},
		"longitude":   {"85.3"},
		"latitude":    {"27.7"},
		"telephone":   {"123"},
		"website":     {"https://new.example.com"},
	}
	w := postForm(r, "/restaurant/create", form, sessionFor(t, owner))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/restaurant/") {
		t.Fatalf("redirect = %q, want restaurant detail", loc)
	}

	var restaurant models.Restaurant
	if err := db.Preload("Owners").Where("name = ?", "New Place").First(&restaurant).Error; err != nil {
		t.Fatalf("restaurant was not saved: %v", err)
	}
	if !restaurant.OwnedBy(owner.ID) {
		t.Errorf("creator is not in the owner set")
	}
}

func TestRestaurantUpdateRejectsNonOwner(t *testing.T) {
	r, db := newTestServer(t)

	owner := createUser(t, db, "chef", models.GroupOwner)
	// Also in the owner group, so they hold change_restaurant. Ownership of
	// this particular restaurant is what must be missing.
	intruder := createUser(t, db, "rival", models.GroupOwner)

	restaurant := createRestaurant(t, db, "Chez Chef")
	if err := db.Model(&restaurant).Association("Owners").Append(&owner); err != nil {
		t.Fatalf("could not attach owner: %v", err)
	}

	form := url.Values{"name": {"Hijacked"}}
	w := postForm(r, fmt.Sprintf("/restaurant/update/%d", restaurant.ID), form, sessionFor(t, intruder))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != fmt.Sprintf("/restaurant/%d", restaurant.ID) {
		t.Errorf("redirect = %q, want detail page", loc)
	}
	if got := flashMessage(t, w); got != "You are not the owner of this restaurant!" {
		t.Errorf("flash = %q", got)
	}

	var reloaded models.Restaurant
	db.First(&reloaded, restaurant.ID)
	if reloaded.Name != "Chez Chef" {
		t.Errorf("restaurant was modified by a non-owner")
	}
}

func TestRestaurantUpdateByOwner(t *testing.T) {
	r, db := newTestServer(t)

	owner := createUser(t, db, "chef", models.GroupOwner)
	restaurant := createRestaurant(t, db, "Chez Chef")
	if err := db.Model(&restaurant).Association("Owners").Append(&owner); err != nil {
		t.Fatalf("could not attach owner: %v", err)
	}

	form := url.Values{
		"name":      {"Chez Chef Deluxe"},
		"longitude": {"85.3"},
		"latitude":  {"27.7"},
	}
	w := postForm(r, fmt.Sprintf("/restaurant/update/%d", restaurant.ID), form, sessionFor(t, owner))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}

	var reloaded models.Restaurant
	db.First(&reloaded, restaurant.ID)
	if reloaded.Name != "Chez Chef Deluxe" {
		t.Errorf("name = %q, want %q", reloaded.Name, "Chez Chef Deluxe")
	}
}

func TestRestaurantDeleteButton(t *testing.T) {
	r, db := newTestServer(t)

	owner := createUser(t, db, "chef", models.GroupOwner)
	restaurant := createRestaurant(t, db, "Closing Soon")
	if err := db.Model(&restaurant).Association("Owners").Append(&owner); err != nil {
		t.Fatalf("could not attach owner: %v", err)
	}

	form := url.Values{"delete_btn": {"1"}}
	w := postForm(r, fmt.Sprintf("/restaurant/update/%d", restaurant.ID), form, sessionFor(t, owner))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if got := flashMessage(t, w); got != "Restaurant removed." {
		t.Errorf("flash = %q", got)
	}

	var count int64
	db.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).Count(&count)
	if count != 0 {
		t.Errorf("restaurant still exists after delete")
	}
}

func TestTypePopupCreate(t *testing.T) {
	r, db := newTestServer(t)
	owner := createUser(t, db, "chef", models.GroupOwner)

	form := url.Values{"name": {"Diner"}, "next": {"/restaurant/create"}}
	w := postForm(r, "/restaurant/types/create", form, sessionFor(t, owner))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/restaurant/create" {
		t.Errorf("redirect = %q, want /restaurant/create", loc)
	}

	var count int64
	db.Model(&models.Type{}).Where("name = ?", "Diner").Count(&count)
	if count != 1 {
		t.Errorf("type rows = %d, want 1", count)
	}
}

func TestCuisinePopupCreateValidatesName(t *testing.T) {
	r, db := newTestServer(t)
	owner := createUser(t, db, "chef", models.GroupOwner)

	form := url.Values{"name": {"   "}}
	w := postForm(r, "/restaurant/cuisines/create", form, sessionFor(t, owner))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (form re-render)", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Name is required") {
		t.Errorf("validation error not shown")
	}

	var count int64
	db.Model(&models.Cuisine{}).Count(&count)
	if count != 0 {
		t.Errorf("blank cuisine was saved")
	}
}
