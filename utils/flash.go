package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// One-shot messages ride in a short-lived cookie: mutation handlers set them
// before redirecting, the next rendered page consumes them.

const FlashCookie = "flash"

// SetFlash appends a message to the flash cookie on the outgoing response.
func SetFlash(c *gin.Context, message string) {
	existing, _ := c.Cookie(FlashCookie)
	if existing != "" {
		message = existing + "\n" + message
	}
	c.SetCookie(FlashCookie, message, 300, "/", "", false, true)
}

// Flashes returns the pending messages and clears the cookie.
func Flashes(c *gin.Context) []string {
	value, err := c.Cookie(FlashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(FlashCookie, "", -1, "/", "", false, true)
	return strings.Split(value, "\n")
}
