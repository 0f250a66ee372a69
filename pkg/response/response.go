package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

// Success sends a response of the form {"success": true, ...fields}. The
// fields map is mutated in place; callers should not reuse it.
func Success(c *gin.Context, status int, fields gin.H) {
	if fields == nil {
		fields = gin.H{}
	}
	fields["success"] = true
	c.Header("Cache-Control", "no-store")
	c.JSON(status, fields)
}

// OK is shorthand for a 200 success response.
func OK(c *gin.Context, fields gin.H) {
	Success(c, http.StatusOK, fields)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, fields gin.H) {
	Success(c, http.StatusCreated, fields)
}

// Error converts the error into {"error": message} with the mapped status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
