package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/receipegram/backend/internal/application"
	"github.com/receipegram/backend/internal/interface/middleware"
	"github.com/receipegram/backend/pkg/response"
	"github.com/receipegram/backend/pkg/validation"
)

// AuthHandler serves registration, login, and the current user's profile.
type AuthHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	Bio      string `json:"bio"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("register payload rejected")
		response.Message(c, http.StatusBadRequest, "Username, email, and password are required")
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserExists) {
			response.Message(c, http.StatusBadRequest, "Username or email already exists")
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Message(c, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   res.Token,
		"user": gin.H{
			"id":       res.User.ID,
			"username": res.User.Username,
			"email":    res.User.Email,
			"fullName": res.User.FullName,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Message(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Message(c, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   res.Token,
		"user": gin.H{
			"id":           res.User.ID,
			"username":     res.User.Username,
			"email":        res.User.Email,
			"fullName":     res.User.FullName,
			"bio":          res.User.Bio,
			"profileImage": res.User.ProfileImage,
		},
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	u, err := h.Svc.Profile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("profile fetch failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("profile payload rejected")
		response.Message(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, req.FullName, req.Bio)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("profile update failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}
