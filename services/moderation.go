// Package services holds the workflows behind the HTTP surface: moderation
// moves, forum submissions, event signups and user administration.
package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"societyhub/models"
	"societyhub/store"
)

// ModerationService transitions a post's moderation status exactly once per
// decision and keeps the audit trail.
type ModerationService struct {
	posts    store.PostStore
	comments store.CommentStore
	audit    store.AuditStore
	now      func() time.Time
}

func NewModerationService(posts store.PostStore, comments store.CommentStore, audit store.AuditStore) *ModerationService {
	return &ModerationService{posts: posts, comments: comments, audit: audit, now: time.Now}
}

// Approve moves the post from submitted_posts to approved_posts, stamping the
// approval trail. A post not in submitted_posts (including one already
// decided) yields ErrNotFound.
func (s *ModerationService) Approve(ctx context.Context, postID primitive.ObjectID, adminUID string) (*models.Post, error) {
	now := s.now().Unix()
	post, err := s.posts.Move(ctx, postID, models.StatusSubmitted, models.StatusApproved, func(p *models.Post) {
		p.IsApproved = true
		p.ApprovedBy = adminUID
		p.ApprovedAt = now
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, "approve_post", postID.Hex(), adminUID, "")
	return post, nil
}

// Reject moves the post to rejected_posts. The reason is stored verbatim.
func (s *ModerationService) Reject(ctx context.Context, postID primitive.ObjectID, adminUID, reason string) (*models.Post, error) {
	now := s.now().Unix()
	post, err := s.posts.Move(ctx, postID, models.StatusSubmitted, models.StatusRejected, func(p *models.Post) {
		p.IsApproved = false
		p.RejectedBy = adminUID
		p.RejectedAt = now
		p.RejectionReason = reason
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, "reject_post", postID.Hex(), adminUID, reason)
	return post, nil
}

// Delete removes the post from whichever moderation collection holds it,
// cascading to its comments first.
func (s *ModerationService) Delete(ctx context.Context, postID primitive.ObjectID, adminUID string) error {
	_, status, err := s.posts.Find(ctx, postID)
	if err != nil {
		return err
	}

	removed, err := s.comments.DeleteByPost(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, status, postID); err != nil {
		return err
	}

	s.logAudit(ctx, "delete_post", postID.Hex(), adminUID,
		fmt.Sprintf("collection=%s comments_removed=%d", status.Collection(), removed))
	return nil
}

// EditPostInput carries the fields an admin may change in place. Nil fields
// are left alone.
type EditPostInput struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
	IsLocked *bool     `json:"isLocked"`
}

// Edit updates the post in place in whichever collection holds it.
func (s *ModerationService) Edit(ctx context.Context, postID primitive.ObjectID, adminUID string, in EditPostInput) (*models.Post, error) {
	_, status, err := s.posts.Find(ctx, postID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": s.now().Unix()}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Tags != nil {
		set["tags"] = *in.Tags
	}
	if in.IsPinned != nil {
		set["isPinned"] = *in.IsPinned
	}
	if in.IsLocked != nil {
		set["isLocked"] = *in.IsLocked
	}

	if err := s.posts.Update(ctx, status, postID, set); err != nil {
		return nil, err
	}
	return s.posts.Get(ctx, status, postID)
}

func (s *ModerationService) ListByStatus(ctx context.Context, status models.ModerationStatus) ([]models.Post, error) {
	return s.posts.List(ctx, status)
}

func (s *ModerationService) logAudit(ctx context.Context, action, targetID, adminUID, details string) {
	entry := &models.AuditEntry{
		Action:      action,
		TargetID:    targetID,
		PerformedBy: adminUID,
		Timestamp:   s.now().Unix(),
		Details:     details,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		// The decision already happened; a lost audit row is logged, not fatal.
		zap.L().Warn("audit append failed", zap.String("action", action), zap.Error(err))
	}
}
