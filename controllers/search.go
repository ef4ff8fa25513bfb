package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"dinebook/config"
	"dinebook/middlewares"
	"dinebook/models"
	"dinebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SearchAll is the sentinel term meaning "no filter".
const SearchAll = "all"

// Search normalizes the submitted term and redirects to the listing page, so
// result pages stay linkable. Blank input means "all".
func Search() gin.HandlerFunc {
	return func(c *gin.Context) {
		term := strings.TrimSpace(c.PostForm("search_field"))
		if term == "" {
			term = strings.TrimSpace(c.Query("search_field"))
		}
		if term == "" {
			term = SearchAll
		}
		c.Redirect(http.StatusFound, "/restaurant/search/"+url.PathEscape(term))
	}
}

// SearchListing renders one page of restaurants whose name or type name
// contains the search term.
func SearchListing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		text := c.Param("text")
		size := config.C.PageSize

		var total int64
		if err := searchQuery(db, text).Distinct("restaurants.id").Count(&total).Error; err != nil {
			logrus.Errorf("failed to count search results for %q: %v", text, err)
		}

		page, numPages := resolvePage(c.Query("page"), total, size)

		var restaurants []models.Restaurant
		err := searchQuery(db, text).
			Distinct("restaurants.*").
			Order("restaurants.id").
			Offset((page - 1) * size).
			Limit(size).
			Preload("Types").
			Find(&restaurants).Error
		if err != nil {
			logrus.Errorf("failed to search restaurants for %q: %v", text, err)
		}

		c.HTML(http.StatusOK, "search.html", gin.H{
			"searchText":  text,
			"restaurants": restaurants,
			"page":        page,
			"numPages":    numPages,
			"hasPrev":     page > 1,
			"hasNext":     page < numPages,
			"prevPage":    page - 1,
			"nextPage":    page + 1,
			"flashes":     utils.Flashes(c),
			"user":        middlewares.CurrentUser(c),
		})
	}
}

// searchQuery builds a fresh filter query; callers run it once for the count
// and once for the page slice.
func searchQuery(db *gorm.DB, text string) *gorm.DB {
	query := db.Model(&models.Restaurant{})
	if text == SearchAll {
		return query
	}

	pattern := "%" + escapeLike(text) + "%"
	return query.
		Joins("LEFT JOIN restaurant_types ON restaurant_types.restaurant_id = restaurants.id").
		Joins("LEFT JOIN types ON types.id = restaurant_types.type_id").
		Where("LOWER(restaurants.name) LIKE LOWER(?) ESCAPE '\\' OR LOWER(types.name) LIKE LOWER(?) ESCAPE '\\'", pattern, pattern)
}

// escapeLike quotes LIKE metacharacters so the search term matches
// literally, pairing with the ESCAPE '\' clause above.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// resolvePage turns the raw page parameter into a page in [1, numPages].
// Missing or unparseable input falls back to the first page; integers out of
// range in either direction clamp to the last page.
func resolvePage(raw string, total int64, size int) (int, int) {
	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1, numPages
	}
	if page < 1 || page > numPages {
		return numPages, numPages
	}
	return page, numPages
}
