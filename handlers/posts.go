package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societyhub/models"
	"societyhub/services"
)

// authorName resolves the caller's display name for attribution on posts and
// comments. Falls back to the uid if the account has gone missing.
func authorName(c *gin.Context, uid string) string {
	ctx, cancel := reqContext()
	defer cancel()

	account, err := identityProvider.GetAccount(ctx, uid)
	if err != nil {
		return uid
	}
	return account.DisplayName
}

func parseID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// SubmitPost creates a post in the moderation queue. One submission per hour
// per member.
func SubmitPost(c *gin.Context) {
	var req services.SubmitPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetString("uid")

	ctx, cancel := reqContext()
	defer cancel()

	post, err := forumService.Submit(ctx, uid, authorName(c, uid), req)
	if err != nil {
		writeError(c, err, "Failed to submit post")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post submitted for review",
		"postId":  post.ID.Hex(),
	})
}

func ListPosts(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	posts, err := forumService.ListApproved(ctx)
	if err != nil {
		writeError(c, err, "Failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	post, err := forumService.GetApproved(ctx, id)
	if err != nil {
		writeError(c, err, "Failed to fetch post")
		return
	}
	c.JSON(http.StatusOK, post)
}

func LikePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if err := forumService.LikePost(ctx, id); err != nil {
		writeError(c, err, "Failed to like post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

func ListComments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	comments, err := forumService.Comments(ctx, id)
	if err != nil {
		writeError(c, err, "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func CreateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetString("uid")

	ctx, cancel := reqContext()
	defer cancel()

	comment, err := forumService.AddComment(ctx, uid, authorName(c, uid), id, req.Content)
	if err != nil {
		writeError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Comment added",
		"commentId": comment.ID.Hex(),
	})
}

func LikeComment(c *gin.Context) {
	id, ok := parseID(c, "commentId")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if err := forumService.LikeComment(ctx, id); err != nil {
		writeError(c, err, "Failed to like comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment liked"})
}
