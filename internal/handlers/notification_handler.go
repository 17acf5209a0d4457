package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/services"
)

func ListNotifications(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications, err := ns.ListNotifications(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(notifications, ""))
	}
}
