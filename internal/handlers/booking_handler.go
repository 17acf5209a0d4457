package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/grooviti/internal/middleware"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/services"
)

func CreateTicketBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}

		var req models.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}
		if req.UserID != "" && !claims.IsOwner(req.UserID) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden: you can only book for yourself"))
			return
		}

		order, err := bs.CreateTicketBooking(c.Request.Context(), claims.UserID, req)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, models.BookingResponse{Success: true, BookingOrder: *order})
		case errors.Is(err, models.ErrSoldOut):
			c.JSON(http.StatusConflict, models.ErrorResponse("Sold out"))
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse("Event not found"))
		case errors.Is(err, services.ErrQuantityMismatch):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		default:
			respondError(c, err)
		}
	}
}
