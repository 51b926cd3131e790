package web

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "ashlar_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// setFlash queues a message; gin query-escapes the cookie value.
func setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, category+"|"+message, 60, "/", "", false, true)
}

// popFlash reads the pending flash, if any, and clears it.
func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	category, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return &Flash{Category: category, Message: message}
}
