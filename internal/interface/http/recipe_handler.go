package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/receipegram/backend/internal/application"
	"github.com/receipegram/backend/internal/interface/middleware"
	"github.com/receipegram/backend/pkg/media"
	"github.com/receipegram/backend/pkg/response"
)

// RecipeHandler serves the feed, recipe CRUD with media upload, likes,
// and comments.
type RecipeHandler struct {
	Svc    *application.RecipeService
	Media  media.Store
	Logger *logrus.Logger
}

func NewRecipeHandler(svc *application.RecipeService, store media.Store, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Media: store, Logger: logger}
}

type addCommentRequest struct {
	Content string `json:"content"`
}

// List is the feed endpoint. Auth is optional here: a valid token scopes
// visibility and resolves isLiked, a missing or bad one degrades to the
// anonymous public-only view.
func (h *RecipeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	userID, _ := strconv.ParseInt(c.Query("userId"), 10, 64)

	items, err := h.Svc.Feed(c.Request.Context(), application.FeedInput{
		Page:       page,
		Limit:      limit,
		Search:     c.Query("search"),
		Tags:       c.Query("tags"),
		Difficulty: c.Query("difficulty"),
		UserID:     userID,
		Following:  c.Query("following") == "true",
		ViewerID:   c.GetInt64(middleware.CtxUserIDKey),
	})
	if err != nil {
		h.Logger.WithError(err).Error("feed query failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"recipes": items})
}

func (h *RecipeHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Recipe not found")
		return
	}
	item, err := h.Svc.Detail(c.Request.Context(), id, c.GetInt64(middleware.CtxUserIDKey))
	if err != nil {
		if errors.Is(err, application.ErrRecipeNotFound) {
			response.Message(c, http.StatusNotFound, "Recipe not found")
			return
		}
		h.Logger.WithError(err).Error("recipe detail failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"recipe": item})
}

func (h *RecipeHandler) Create(c *gin.Context) {
	videoPath, ok := h.saveUpload(c, "video", "video/", "Only video files are allowed for video field")
	if !ok {
		return
	}
	imagePath, ok := h.saveUpload(c, "image", "image/", "Only image files are allowed for image field")
	if !ok {
		return
	}

	item, err := h.Svc.Create(c.Request.Context(), application.CreateRecipeInput{
		UserID:       c.GetInt64(middleware.CtxUserIDKey),
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Ingredients:  c.PostForm("ingredients"),
		Instructions: c.PostForm("instructions"),
		VideoPath:    videoPath,
		ImagePath:    imagePath,
		CookingTime:  formInt(c, "cookingTime"),
		Servings:     formInt(c, "servings"),
		Difficulty:   c.PostForm("difficulty"),
		Visibility:   c.PostForm("visibility"),
		Tags:         c.PostForm("tags"),
	})
	if err != nil {
		if errors.Is(err, application.ErrMissingRequired) {
			response.Message(c, http.StatusBadRequest, "Title, ingredients, and instructions are required")
			return
		}
		h.Logger.WithError(err).Error("recipe create failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Recipe created successfully", "recipe": item})
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Recipe not found or access denied")
		return
	}

	videoPath, ok := h.saveUpload(c, "video", "video/", "Only video files are allowed for video field")
	if !ok {
		return
	}
	imagePath, ok := h.saveUpload(c, "image", "image/", "Only image files are allowed for image field")
	if !ok {
		return
	}

	in := application.UpdateRecipeInput{
		Title:        c.PostForm("title"),
		Ingredients:  c.PostForm("ingredients"),
		Instructions: c.PostForm("instructions"),
		VideoPath:    videoPath,
		ImagePath:    imagePath,
		CookingTime:  formInt(c, "cookingTime"),
		Servings:     formInt(c, "servings"),
		Difficulty:   c.PostForm("difficulty"),
		Visibility:   c.PostForm("visibility"),
	}
	if v, present := c.GetPostForm("description"); present {
		in.Description = &v
	}
	if v, present := c.GetPostForm("tags"); present {
		in.Tags = &v
	}

	item, err := h.Svc.Update(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey), id, in)
	if err != nil {
		if errors.Is(err, application.ErrRecipeNotFound) {
			response.Message(c, http.StatusNotFound, "Recipe not found or access denied")
			return
		}
		h.Logger.WithError(err).Error("recipe update failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Recipe updated successfully", "recipe": item})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Recipe not found or access denied")
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey), id); err != nil {
		if errors.Is(err, application.ErrRecipeNotFound) {
			response.Message(c, http.StatusNotFound, "Recipe not found or access denied")
			return
		}
		h.Logger.WithError(err).Error("recipe delete failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) Like(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Recipe not found")
		return
	}
	liked, err := h.Svc.ToggleLike(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey), id)
	if err != nil {
		h.Logger.WithError(err).Error("like toggle failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	msg := "Recipe unliked"
	if liked {
		msg = "Recipe liked"
	}
	response.JSON(c, http.StatusOK, gin.H{"message": msg, "isLiked": liked})
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Recipe not found")
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Comment content is required")
		return
	}
	comment, err := h.Svc.AddComment(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey), id, req.Content)
	if err != nil {
		if errors.Is(err, application.ErrEmptyComment) {
			response.Message(c, http.StatusBadRequest, "Comment content is required")
			return
		}
		h.Logger.WithError(err).Error("comment insert failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Comment added", "comment": comment})
}

func (h *RecipeHandler) Comments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Recipe not found")
		return
	}
	comments, err := h.Svc.Comments(c.Request.Context(), id)
	if err != nil {
		h.Logger.WithError(err).Error("comments list failed")
		response.Message(c, http.StatusInternalServerError, "Database error")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"comments": comments})
}

// saveUpload stores one optional multipart file. It returns the stored
// reference and true, or writes the error response and returns false.
// A missing file is not an error.
func (h *RecipeHandler) saveUpload(c *gin.Context, field, mimePrefix, mimeMsg string) (*string, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Message(c, http.StatusRequestEntityTooLarge, "File too large")
			return nil, false
		}
		response.Message(c, http.StatusBadRequest, "Invalid upload")
		return nil, false
	}

	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, mimePrefix) {
		response.Message(c, http.StatusBadRequest, mimeMsg)
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).Error("upload open failed")
		response.Message(c, http.StatusInternalServerError, "Upload error")
		return nil, false
	}
	defer func() { _ = f.Close() }()

	ref, err := h.Media.Save(c.Request.Context(), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Error("upload save failed")
		response.Message(c, http.StatusInternalServerError, "Upload error")
		return nil, false
	}
	return &ref, true
}

func formInt(c *gin.Context, field string) *int {
	v, present := c.GetPostForm(field)
	if !present || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
