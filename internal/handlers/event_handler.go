package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/services"
)

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Normalize incoming id: trim spaces and surrounding quotes which may occur
		// when clients pass values as JSON strings or templates.
		eventID := strings.Trim(strings.TrimSpace(c.Param("id")), "\"'")

		event, err := es.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse("Event not found"))
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}
