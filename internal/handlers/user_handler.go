package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/grooviti/internal/middleware"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/services"
)

func Register(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		if _, err := u.Register(c.Request.Context(), req); err != nil {
			if errors.Is(err, models.ErrEmailTaken) {
				c.JSON(http.StatusConflict, models.ErrorResponse("User already exists"))
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(nil, "User registered successfully"))
	}
}

func Login(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		token, user, err := u.Login(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("Invalid email or password"))
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{Success: true, Token: token, Email: user.Email})
	}
}

func Profile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}

		user, err := u.Profile(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				// token outlived its account
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ProfileResponse{Success: true, User: *user})
	}
}
