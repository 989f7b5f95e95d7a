package middleware

import (
	"github.com/gin-gonic/gin"
)

// BindJSON binds and validates the request body into obj, answering 400
// with every failing field when that fails.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondValidationError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates query parameters into obj.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondValidationError(c, err)
		return false
	}
	return true
}
