package handlers

import (
	"strconv"
	"strings"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/gin-gonic/gin"
)

// currentUser extracts the resolved user from the gin context.
func currentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// pageParam parses the page query parameter, defaulting to 1.
func pageParam(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return 1
	}
	page, errParse := strconv.Atoi(raw)
	if errParse != nil || page < 1 {
		return 1
	}
	return page
}

// searchParam parses the trimmed search query parameter.
func searchParam(c *gin.Context) string {
	return strings.TrimSpace(c.Query("search"))
}
