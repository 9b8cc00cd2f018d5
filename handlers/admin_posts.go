package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"societyhub/models"
	"societyhub/services"
)

// AdminListPosts lists a moderation queue. ?status=submitted|approved|rejected,
// defaulting to the review queue.
func AdminListPosts(c *gin.Context) {
	status := models.ModerationStatus(c.DefaultQuery("status", string(models.StatusSubmitted)))
	switch status {
	case models.StatusSubmitted, models.StatusApproved, models.StatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	posts, err := moderationService.ListByStatus(ctx, status)
	if err != nil {
		writeError(c, err, "Failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func ApprovePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	post, err := moderationService.Approve(ctx, id, c.GetString("uid"))
	if err != nil {
		writeError(c, err, "Failed to approve post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post approved",
		"post":    post,
	})
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func RejectPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	post, err := moderationService.Reject(ctx, id, c.GetString("uid"), req.Reason)
	if err != nil {
		writeError(c, err, "Failed to reject post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post rejected",
		"post":    post,
	})
}

// EditPost updates a post in place, wherever it currently lives.
func EditPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.EditPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	post, err := moderationService.Edit(ctx, id, c.GetString("uid"), req)
	if err != nil {
		writeError(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated",
		"post":    post,
	})
}

// DeletePost removes the post and all its comments.
func DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if err := moderationService.Delete(ctx, id, c.GetString("uid")); err != nil {
		writeError(c, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post and its comments deleted"})
}

// AdminDeleteComment removes a single comment.
func AdminDeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if err := userAdminService.DeleteComment(ctx, id, c.GetString("uid")); err != nil {
		writeError(c, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
