package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/services"
)

func RegisterOrganizer(s *services.OrganizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OrganizerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		order, err := s.Register(c.Request.Context(), req)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, models.OrganizerResponse{
				Success:        true,
				Message:        "Organizer registered successfully",
				OrganizerOrder: *order,
			})
		case errors.Is(err, models.ErrEmailTaken), errors.Is(err, models.ErrOrganizerExists):
			c.JSON(http.StatusConflict, models.ErrorResponse("User already exists"))
		case errors.Is(err, services.ErrUnknownPlan):
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Select a valid plan."))
		default:
			respondError(c, err)
		}
	}
}
