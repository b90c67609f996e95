package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"autogram-api/models"
	"autogram-api/services"
)

type PostController struct {
	db      *gorm.DB
	storage services.ObjectStorage
	logger  *zap.Logger
}

func NewPostController(db *gorm.DB, storage services.ObjectStorage, logger *zap.Logger) *PostController {
	return &PostController{
		db:      db,
		storage: storage,
		logger:  logger,
	}
}

type CreatePostRequest struct {
	ImageID string   `json:"image_id" binding:"required"`
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// GenerateUploadURL hands the client a one-time presigned upload target.
func (pc *PostController) GenerateUploadURL(c *gin.Context) {
	target, err := pc.storage.GenerateUploadTarget(c.Request.Context())
	if err != nil {
		pc.logger.Error("failed to generate upload target", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, target)
}

func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A resolved identity is not enough: the user record itself must exist.
	var user models.User
	if err := pc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	post := models.Post{
		ID:      uuid.New().String(),
		UserID:  userID,
		ImageID: req.ImageID,
		Caption: req.Caption,
		Tags:    models.StringSlice(req.Tags),
		Likes:   models.StringSlice{},
	}

	if err := pc.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetFeed returns every post newest-first, denormalized at read time: owner
// name, a fetchable image URL and the post's comments (newest-first) with
// their authors' names. Missing owners fall back to "Anonymous" and failed
// image resolution to an empty URL; neither is an error.
func (pc *PostController) GetFeed(c *gin.Context) {
	var posts []models.Post
	if err := pc.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, post := range posts {
		feedPost := models.FeedPost{
			Post:     post,
			Username: pc.lookupUsername(post.UserID),
		}

		imageURL, err := pc.storage.ResolveURL(c.Request.Context(), post.ImageID)
		if err != nil {
			pc.logger.Warn("failed to resolve image URL",
				zap.String("post_id", post.ID),
				zap.String("image_id", post.ImageID),
				zap.Error(err))
			imageURL = ""
		}
		feedPost.ImageURL = imageURL

		var comments []models.Comment
		if err := pc.db.Where("post_id = ?", post.ID).Order("created_at DESC").Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}

		feedPost.Comments = make([]models.FeedComment, 0, len(comments))
		for _, comment := range comments {
			feedPost.Comments = append(feedPost.Comments, models.FeedComment{
				Comment:  comment,
				Username: pc.lookupUsername(comment.UserID),
			})
		}

		feed = append(feed, feedPost)
	}

	c.JSON(http.StatusOK, feed)
}

// ToggleLike flips the caller's membership in the post's likes set: present
// removes, absent appends. Duplicates never accumulate across toggles.
func (pc *PostController) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	likes := post.Likes
	if likes.Contains(userID) {
		likes = likes.Without(userID)
	} else {
		likes = append(likes, userID)
	}

	if err := pc.db.Model(&models.Post{}).Where("id = ?", postID).Update("likes", likes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update likes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like toggled", "likes": likes})
}

func (pc *PostController) AddComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := pc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		ID:     uuid.New().String(),
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
	}

	if err := pc.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DeletePost removes a post and its dependents. Owner-only; the cascade runs
// comments first, then the image blob, then the post record itself, so an
// interrupted cascade cannot leave dependents behind a missing post. There is
// no transaction across the steps: a mid-cascade failure aborts with the
// earlier steps already applied, and is logged rather than silently accepted.
func (pc *PostController) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this post"})
		return
	}

	if err := pc.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		pc.logger.Error("cascade delete: failed to delete comments",
			zap.String("post_id", postID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := pc.storage.Delete(c.Request.Context(), post.ImageID); err != nil {
		pc.logger.Error("cascade delete: failed to delete image blob",
			zap.String("post_id", postID),
			zap.String("image_id", post.ImageID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := pc.db.Delete(&post).Error; err != nil {
		pc.logger.Error("cascade delete: failed to delete post record",
			zap.String("post_id", postID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (pc *PostController) lookupUsername(userID string) string {
	var user models.User
	if err := pc.db.First(&user, "id = ?", userID).Error; err != nil {
		return "Anonymous"
	}
	return user.Name
}
