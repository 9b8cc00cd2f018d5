package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"societyhub/apperrors"
	"societyhub/auth"
	"societyhub/services"
	"societyhub/store"
)

// Services and stores shared across all handler files, wired once at startup.
var (
	forumService      *services.ForumService
	moderationService *services.ModerationService
	eventService      *services.EventService
	userAdminService  *services.UserAdminService
	identityProvider  auth.Provider
	usersStore        store.UserStore
)

type Deps struct {
	Forum      *services.ForumService
	Moderation *services.ModerationService
	Events     *services.EventService
	UserAdmin  *services.UserAdminService
	Provider   auth.Provider
	Users      store.UserStore
}

func Init(d Deps) {
	forumService = d.Forum
	moderationService = d.Moderation
	eventService = d.Events
	userAdminService = d.UserAdmin
	identityProvider = d.Provider
	usersStore = d.Users
}

// reqContext bounds every handler's database work.
func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// writeError turns a service error into the JSON shape the frontend renders
// inline. Unexpected errors are logged and surfaced as a generic message so
// internals never leak.
func writeError(c *gin.Context, err error, fallback string) {
	var ve *apperrors.ValidationError
	var ce *apperrors.CapacityError
	var rle *apperrors.RateLimitError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "Validation failed",
			"message":       ve.Error(),
			"missingFields": ve.Missing,
			"invalidFields": ve.Invalid,
		})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Sold out",
			"message": ce.Error(),
		})
	case errors.As(err, &rle):
		retry := int64(rle.RetryAfter.Seconds()) + 1
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "Too many submissions",
			"message":    rle.Error(),
			"retryAfter": retry,
		})
	case errors.Is(err, apperrors.ErrRestricted):
		c.JSON(http.StatusForbidden, gin.H{"error": "This account is restricted"})
	case errors.Is(err, apperrors.ErrLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "This post is locked"})
	case errors.Is(err, apperrors.ErrSignupClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signup is not open for this event"})
	case errors.Is(err, apperrors.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		zap.L().Error(fallback,
			zap.String("request_id", c.GetString("requestID")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
