// README: Recovery middleware: a panicking handler still answers with a JSON 500.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				fault := fmt.Sprint(rec)
				log.Error("handler panic",
					zap.String("path", c.Request.URL.Path),
					zap.String("fault", fault),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fault})
			}
		}()
		c.Next()
	}
}
