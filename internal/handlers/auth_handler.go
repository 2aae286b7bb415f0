package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/middleware"
	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/services"
)

type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	Name             string `json:"name" binding:"required"`
	Role             string `json:"role" binding:"required"`
	OrganizationName string `json:"organization_name"`
	CollegeName      string `json:"college_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid role.")
		return
	}

	account, err := h.Auth.Register(c.Request.Context(), services.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		Name:             req.Name,
		Role:             role,
		OrganizationName: req.OrganizationName,
		CollegeName:      req.CollegeName,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user":    account.Public(),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	account, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	if h.JWTSecret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}
	token, err := middleware.GenerateToken(h.JWTSecret, account, h.TokenTTL)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  account.Public(),
	})
}

func (h *Handler) Me(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, account.Public())
}
