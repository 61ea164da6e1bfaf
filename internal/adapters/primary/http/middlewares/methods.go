package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// MethodNotAllowed 405 с заголовком Allow
func MethodNotAllowed(allowed ...string) gin.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
}

// RestrictMethods регистрирует 405 для всех остальных методов path
func RestrictMethods(r gin.IRoutes, path string, allowed ...string) {
	handler := MethodNotAllowed(allowed...)
	for _, method := range standardMethods {
		if !slices.Contains(allowed, method) {
			r.Handle(method, path, handler)
		}
	}
}
