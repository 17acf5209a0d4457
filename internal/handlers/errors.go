package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/grooviti/internal/models"
)

// respondError answers validation failures with 400 and their field message;
// anything else is recorded for ErrorHandler.
func respondError(c *gin.Context, err error) {
	if _, msg, ok := models.Explain(err); ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(msg))
		return
	}
	_ = c.Error(err)
}
