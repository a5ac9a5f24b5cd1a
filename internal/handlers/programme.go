package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suivi-dev/suivi/internal/types"
)

// ListProgrammes serves the fixed catalog of regional programmes used by
// convention forms.
func ListProgrammes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"programmes": types.Programmes})
}
