package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/receipegram/backend/internal/application"
	"github.com/receipegram/backend/internal/interface/middleware"
	"github.com/receipegram/backend/pkg/response"
)

// UserHandler serves public profiles, the follower graph, and user search.
// All /users/:user routes share one param name; the profile route reads it
// as a username, the follow routes as a numeric id.
type UserHandler struct {
	Users   *application.UserService
	Follows *application.FollowService
	Logger  *logrus.Logger
}

func NewUserHandler(users *application.UserService, follows *application.FollowService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Follows: follows, Logger: logger}
}

func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("user")
	u, stats, err := h.Users.PublicProfile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("public profile fetch failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":             u.ID,
			"username":       u.Username,
			"fullName":       u.FullName,
			"bio":            u.Bio,
			"profileImage":   u.ProfileImage,
			"createdAt":      u.CreatedAt,
			"recipeCount":    stats.RecipeCount,
			"followersCount": stats.FollowersCount,
			"followingCount": stats.FollowingCount,
		},
	})
}

func (h *UserHandler) FollowToggle(c *gin.Context) {
	target, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	viewer := c.GetInt64(middleware.CtxUserIDKey)

	following, err := h.Follows.Toggle(c.Request.Context(), viewer, target)
	if err != nil {
		if errors.Is(err, application.ErrSelfFollow) {
			response.Message(c, http.StatusBadRequest, "Cannot follow yourself")
			return
		}
		h.Logger.WithError(err).Error("follow toggle failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}

	msg := "Unfollowed successfully"
	if following {
		msg = "Followed successfully"
	}
	response.JSON(c, http.StatusOK, gin.H{"message": msg, "isFollowing": following})
}

func (h *UserHandler) FollowingStatus(c *gin.Context) {
	target, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	viewer := c.GetInt64(middleware.CtxUserIDKey)

	following, err := h.Follows.IsFollowing(c.Request.Context(), viewer, target)
	if err != nil {
		h.Logger.WithError(err).Error("following status failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"isFollowing": following})
}

func (h *UserHandler) Followers(c *gin.Context) {
	target, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	list, err := h.Follows.Followers(c.Request.Context(), target)
	if err != nil {
		h.Logger.WithError(err).Error("followers list failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"followers": list})
}

func (h *UserHandler) Following(c *gin.Context) {
	target, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	list, err := h.Follows.Following(c.Request.Context(), target)
	if err != nil {
		h.Logger.WithError(err).Error("following list failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"following": list})
}

func (h *UserHandler) Search(c *gin.Context) {
	query := c.Param("query")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.Users.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Message(c, http.StatusInternalServerError, "Search error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"users": users})
}
