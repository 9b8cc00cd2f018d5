package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"societyhub/apperrors"
	"societyhub/auth"
	"societyhub/models"
	"societyhub/store"
)

// UserAdminService is the back-office side of user management: restriction,
// display-name sync and per-user content listings.
type UserAdminService struct {
	users    store.UserStore
	provider auth.Provider
	audit    store.AuditStore
	posts    store.PostStore
	comments store.CommentStore
	now      func() time.Time
}

func NewUserAdminService(users store.UserStore, provider auth.Provider, audit store.AuditStore, posts store.PostStore, comments store.CommentStore) *UserAdminService {
	return &UserAdminService{users: users, provider: provider, audit: audit, posts: posts, comments: comments, now: time.Now}
}

// Restrict flags the user in both the provider's custom claims and the users
// mirror. Restricting an already-restricted user just overwrites the reason
// and timestamp.
func (s *UserAdminService) Restrict(ctx context.Context, userID, adminUID, reason string) error {
	at := s.now().Unix()
	claims := map[string]interface{}{
		"restricted":        true,
		"restrictedBy":      adminUID,
		"restrictedAt":      at,
		"restrictionReason": reason,
	}
	if err := s.provider.SetClaims(ctx, userID, claims); err != nil {
		return err
	}
	if err := s.users.SetRestriction(ctx, userID, adminUID, reason, at); err != nil {
		return err
	}

	s.logAudit(ctx, "restrict_user", userID, adminUID, reason)
	return nil
}

// Unrestrict clears the restriction in both places.
func (s *UserAdminService) Unrestrict(ctx context.Context, userID, adminUID string) error {
	if err := s.provider.UnsetClaims(ctx, userID, "restricted", "restrictedBy", "restrictedAt", "restrictionReason"); err != nil {
		return err
	}
	if err := s.users.ClearRestriction(ctx, userID); err != nil {
		return err
	}

	s.logAudit(ctx, "unrestrict_user", userID, adminUID, "")
	return nil
}

// List returns the users mirror merged with the provider's current identity
// fields. Mirrors whose account has vanished are returned as stored.
func (s *UserAdminService) List(ctx context.Context) ([]models.WebsiteUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		account, err := s.provider.GetAccount(ctx, users[i].UID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				zap.L().Warn("account lookup failed during merge", zap.String("uid", users[i].UID), zap.Error(err))
			}
			continue
		}
		users[i].Email = account.Email
		users[i].DisplayName = account.DisplayName
	}
	return users, nil
}

func (s *UserAdminService) Get(ctx context.Context, uid string) (*models.WebsiteUser, error) {
	return s.users.Get(ctx, uid)
}

// SyncDisplayName reconciles the mirror's cached display name with the
// provider's current one. Reports whether a change was written.
func (s *UserAdminService) SyncDisplayName(ctx context.Context, userID string) (bool, error) {
	account, err := s.provider.GetAccount(ctx, userID)
	if err != nil {
		return false, err
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	if user.DisplayName == account.DisplayName {
		return false, nil
	}

	if err := s.users.SetDisplayName(ctx, userID, account.DisplayName); err != nil {
		return false, err
	}
	zap.L().Info("display name synced",
		zap.String("uid", userID),
		zap.String("from", user.DisplayName),
		zap.String("to", account.DisplayName))
	return true, nil
}

// SyncResult aggregates a batch display-name sync.
type SyncResult struct {
	Synced    int `json:"synced"`
	Unchanged int `json:"unchanged"`
	Errors    int `json:"errors"`
}

// SyncAllDisplayNames runs SyncDisplayName over every mirrored user. Errors
// on individual users are counted, not fatal.
func (s *UserAdminService) SyncAllDisplayNames(ctx context.Context) (SyncResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, u := range users {
		changed, err := s.SyncDisplayName(ctx, u.UID)
		switch {
		case err != nil:
			result.Errors++
			zap.L().Warn("display name sync failed", zap.String("uid", u.UID), zap.Error(err))
		case changed:
			result.Synced++
		default:
			result.Unchanged++
		}
	}
	return result, nil
}

func (s *UserAdminService) UserPosts(ctx context.Context, uid string) ([]store.StatusPost, error) {
	return s.posts.ListByAuthor(ctx, uid)
}

func (s *UserAdminService) UserComments(ctx context.Context, uid string) ([]models.Comment, error) {
	return s.comments.ListByAuthor(ctx, uid)
}

// DeleteComment removes a single comment on behalf of an admin.
func (s *UserAdminService) DeleteComment(ctx context.Context, commentID primitive.ObjectID, adminUID string) error {
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	s.logAudit(ctx, "delete_comment", commentID.Hex(), adminUID, "")
	return nil
}

func (s *UserAdminService) AuditLog(ctx context.Context, limit int64) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.audit.List(ctx, limit)
}

func (s *UserAdminService) logAudit(ctx context.Context, action, targetID, adminUID, details string) {
	entry := &models.AuditEntry{
		Action:      action,
		TargetID:    targetID,
		PerformedBy: adminUID,
		Timestamp:   s.now().Unix(),
		Details:     details,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		zap.L().Warn("audit append failed", zap.String("action", action), zap.Error(err))
	}
}
