package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"autogram-api/models"
	"autogram-api/utils"
)

// SocialController carries the follow graph and the looser reaction-style
// like. Its like is an idempotent set union while PostController.ToggleLike
// flips membership; the two mechanisms share the likes field but are kept as
// distinct capabilities.
type SocialController struct {
	db *gorm.DB
}

func NewSocialController(db *gorm.DB) *SocialController {
	return &SocialController{db: db}
}

type ReactRequest struct {
	Type string `json:"type" binding:"required,oneof=like love laugh wow sad angry"`
}

type SocialCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Follow inserts a follow edge unconditionally: no duplicate guard and no
// self-follow guard.
func (sc *SocialController) Follow(c *gin.Context) {
	followerID := c.GetString("user_id")
	targetUserID := c.Param("user_id")

	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: targetUserID,
	}

	if err := sc.db.Create(&follow).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to follow user")
		return
	}

	c.JSON(http.StatusCreated, follow)
}

// LikePost adds the caller to the post's likes as a set union: repeated calls
// never grow the set past one entry for the caller.
func (sc *SocialController) LikePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	if err := sc.unionLike(postID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Post not found")
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Failed to like post")
		return
	}

	utils.SendSuccess(c, "Post liked", nil)
}

// ReactToPost records a typed reaction and unions the caller into the likes
// set. Reaction rows accumulate per call; the likes set does not.
func (sc *SocialController) ReactToPost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if err := sc.unionLike(postID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Post not found")
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Failed to react to post")
		return
	}

	reaction := models.Reaction{
		PostID: postID,
		UserID: userID,
		Type:   req.Type,
	}

	if err := sc.db.Create(&reaction).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to react to post")
		return
	}

	utils.SendSuccess(c, "Reaction recorded", reaction)
}

// Comment inserts a comment with only the resolved identity as a
// prerequisite; unlike PostController.AddComment it does not require the
// caller's user record to exist.
func (sc *SocialController) Comment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req SocialCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var post models.Post
	if err := sc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		ID:     uuid.New().String(),
		PostID: postID,
		UserID: userID,
		Text:   req.Content,
	}

	if err := sc.db.Create(&comment).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (sc *SocialController) unionLike(postID, userID string) error {
	var post models.Post
	if err := sc.db.First(&post, "id = ?", postID).Error; err != nil {
		return err
	}

	if post.Likes.Contains(userID) {
		return nil
	}

	likes := append(post.Likes, userID)
	return sc.db.Model(&models.Post{}).Where("id = ?", postID).Update("likes", likes).Error
}
