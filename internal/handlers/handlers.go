package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseIDParam reads the :id route parameter. On failure it writes a 404,
// matching the behavior for ids that do not exist.
func parseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)

	if err != nil || id == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}

	return uint(id), true
}

// parseDate parses a YYYY-MM-DD payload field.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
