package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"societyhub/models"
	"societyhub/store"
)

func AdminListUsers(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	users, err := userAdminService.List(ctx)
	if err != nil {
		writeError(c, err, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []models.WebsiteUser{}
	}
	c.JSON(http.StatusOK, users)
}

type RestrictRequest struct {
	Reason string `json:"reason"`
}

func RestrictUser(c *gin.Context) {
	userID := c.Param("id")

	// The reason is optional, so an empty body is fine.
	var req RestrictRequest
	_ = c.ShouldBindJSON(&req)

	ctx, cancel := reqContext()
	defer cancel()

	if err := userAdminService.Restrict(ctx, userID, c.GetString("uid"), req.Reason); err != nil {
		writeError(c, err, "Failed to restrict user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User restricted"})
}

func UnrestrictUser(c *gin.Context) {
	userID := c.Param("id")

	ctx, cancel := reqContext()
	defer cancel()

	if err := userAdminService.Unrestrict(ctx, userID, c.GetString("uid")); err != nil {
		writeError(c, err, "Failed to unrestrict user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unrestricted"})
}

// SyncUser reconciles one user's cached display name with the provider.
func SyncUser(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	changed, err := userAdminService.SyncDisplayName(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to sync user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sync complete",
		"changed": changed,
	})
}

// SyncAllUsers runs the batch display-name sync on demand.
func SyncAllUsers(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	result, err := userAdminService.SyncAllDisplayNames(ctx)
	if err != nil {
		writeError(c, err, "Failed to sync users")
		return
	}

	c.JSON(http.StatusOK, result)
}

func AdminUserPosts(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	posts, err := userAdminService.UserPosts(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []store.StatusPost{}
	}
	c.JSON(http.StatusOK, posts)
}

func AdminUserComments(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	comments, err := userAdminService.UserComments(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch comments")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// AdminAuditLog returns the newest audit entries, ?limit= up to 500.
func AdminAuditLog(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	ctx, cancel := reqContext()
	defer cancel()

	entries, err := userAdminService.AuditLog(ctx, limit)
	if err != nil {
		writeError(c, err, "Failed to fetch audit log")
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
