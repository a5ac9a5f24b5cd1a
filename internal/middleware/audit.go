package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/models"
	"github.com/suivi-dev/suivi/internal/types"
)

const auditBodyLimit = 4096

// Audit records mutating requests made by authenticated users. Reads and
// anonymous requests are not logged.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		method := ctx.Request.Method

		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			ctx.Next()
			return
		}

		// the handler must see the full body; only the stored copy is capped
		var body []byte
		if ctx.Request.Body != nil {
			body, _ = io.ReadAll(ctx.Request.Body)
			ctx.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		ctx.Next()

		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			return
		}

		principal, ok := value.(Principal)

		if !ok {
			return
		}

		stored := body
		if len(stored) > auditBodyLimit {
			stored = stored[:auditBodyLimit]
		}

		metadata, _ := json.Marshal(gin.H{
			"body":  string(stored),
			"query": ctx.Request.URL.RawQuery,
		})

		entry := models.AuditLog{
			UserID:   &principal.ID,
			Username: principal.Username,
			Method:   method,
			Path:     ctx.Request.URL.Path,
			Status:   ctx.Writer.Status(),
			Metadata: datatypes.JSON(metadata),
			IP:       ctx.ClientIP(),
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Printf("Failed to write audit log: %v", err)
		}
	}
}
