package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/suivi-dev/suivi/internal/middleware"
	"github.com/suivi-dev/suivi/internal/types"
)

func GetCurrentPrincipal(ctx *gin.Context) (middleware.Principal, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.Principal{}, fmt.Errorf("user not authenticated")
	}

	principal, ok := value.(middleware.Principal)

	if !ok {
		return middleware.Principal{}, fmt.Errorf("invalid principal type in context")
	}

	return principal, nil
}
