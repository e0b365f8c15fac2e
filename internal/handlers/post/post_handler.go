// internal/handlers/post/post_handler.go
package post

import (
	"errors"
	"net/http"
	"strconv"

	"elizatrader-service/internal/domain/post"
	xerrors "elizatrader-service/internal/pkg/errors"
	"elizatrader-service/internal/pkg/response"
	service "elizatrader-service/internal/service/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *service.PostService
	logger      *zap.Logger
}

func NewPostHandler(postService *service.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// ========== Public Endpoints ==========

// ListPosts returns one page of published posts.
func (h *PostHandler) ListPosts(c *gin.Context) {
	var filters post.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters")
		return
	}
	filters.PublishedOnly = true

	result, err := h.postService.List(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err, "failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"posts":      result.Posts,
		"pagination": result.Pagination,
	})
}

// GetPost returns a single post, counting a view when it is published.
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	p, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": p})
}

// LikePost bumps the like counter.
func (h *PostHandler) LikePost(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	likes, err := h.postService.Like(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to like post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likes": likes})
}

// GetStats returns published-only aggregates.
func (h *PostHandler) GetStats(c *gin.Context) {
	stats, err := h.postService.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to fetch statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// ========== Admin Only Endpoints ==========

// CreatePost creates a new post (admin only).
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "title and content are required")
		return
	}

	p, err := h.postService.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "failed to create post")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "post created successfully",
		"post":    p,
	})
}

// UpdatePost applies a partial update (admin only).
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	p, err := h.postService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err, "failed to update post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "post updated successfully",
		"post":    p,
	})
}

// DeletePost removes a post (admin only).
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "post deleted successfully",
	})
}

// ListAllPosts returns every post including unpublished ones (admin only).
func (h *PostHandler) ListAllPosts(c *gin.Context) {
	var filters post.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters")
		return
	}
	filters.PublishedOnly = false

	result, err := h.postService.List(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err, "failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"posts":      result.Posts,
		"pagination": result.Pagination,
	})
}

// ========== Helpers ==========

func (h *PostHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid post ID")
		return 0, false
	}
	return id, true
}

func (h *PostHandler) respondError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.ValidationError(c, err.Error())
	case errors.Is(err, xerrors.ErrStorageUnavailable):
		h.logger.Error(logMessage, zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		h.logger.Error(logMessage, zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
