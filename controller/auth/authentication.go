package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"disasterreport/controller"
	"disasterreport/dto"
	"disasterreport/repository"
	"disasterreport/services"
)

func AuthController(router *gin.Engine, svc *services.UserService, logger *slog.Logger) {
	router.POST("/signup", func(c *gin.Context) {
		Signup(c, svc, logger)
	})
	router.POST("/login", func(c *gin.Context) {
		Login(c, svc, logger)
	})
}

func Signup(c *gin.Context, svc *services.UserService, logger *slog.Logger) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := svc.Signup(c.Request.Context(), services.SignupInput{
		MobileNumber: request.MobileNumber,
		Name:         request.Name,
		Email:        request.Email,
		Password:     request.Password,
		Mpin:         request.Mpin,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mobile number already registered"})
			return
		}
		controller.InternalError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"user":    user.Public(),
	})
}

func Login(c *gin.Context, svc *services.UserService, logger *slog.Logger) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := svc.Login(c.Request.Context(), request.MobileNumber, request.Mpin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid mpin"})
		default:
			controller.InternalError(c, logger, err)
		}
		return
	}

	response := gin.H{
		"message":  "Login successful",
		"user":     result.User,
		"contacts": result.Contacts,
	}
	if result.AccessToken != "" {
		response["token"] = gin.H{"accessToken": result.AccessToken}
	}
	c.JSON(http.StatusOK, response)
}
