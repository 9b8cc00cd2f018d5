package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"societyhub/apperrors"
	"societyhub/models"
	"societyhub/store"
)

// ForumService is the member-facing side of the forum: submitting posts into
// the moderation queue, reading approved ones, commenting.
type ForumService struct {
	posts    store.PostStore
	comments store.CommentStore
	users    store.UserStore
	cooldown time.Duration
	now      func() time.Time
}

func NewForumService(posts store.PostStore, comments store.CommentStore, users store.UserStore, cooldown time.Duration) *ForumService {
	return &ForumService{posts: posts, comments: comments, users: users, cooldown: cooldown, now: time.Now}
}

type SubmitPostInput struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Submit creates a post in submitted_posts. Restricted users are refused, and
// members may only submit once per cooldown window, counted across all three
// moderation collections so an approval does not reset the clock.
func (s *ForumService) Submit(ctx context.Context, authorUID, authorName string, in SubmitPostInput) (*models.Post, error) {
	if err := s.checkRestricted(ctx, authorUID); err != nil {
		return nil, err
	}

	last, err := s.posts.LastSubmissionAt(ctx, authorUID)
	if err != nil {
		return nil, err
	}
	if last > 0 {
		elapsed := s.now().Sub(time.Unix(last, 0))
		if elapsed < s.cooldown {
			return nil, &apperrors.RateLimitError{RetryAfter: s.cooldown - elapsed}
		}
	}

	now := s.now().Unix()
	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Author:    authorName,
		AuthorID:  authorUID,
		Category:  in.Category,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.posts.Insert(ctx, models.StatusSubmitted, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ForumService) ListApproved(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx, models.StatusApproved)
}

// GetApproved reads a published post and bumps its view counter.
func (s *ForumService) GetApproved(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.Get(ctx, models.StatusApproved, postID)
	if err != nil {
		return nil, err
	}
	if err := s.posts.IncViews(ctx, postID); err == nil {
		post.Views++
	}
	return post, nil
}

func (s *ForumService) LikePost(ctx context.Context, postID primitive.ObjectID) error {
	return s.posts.IncLikes(ctx, postID)
}

// AddComment attaches a comment to an approved, unlocked post.
func (s *ForumService) AddComment(ctx context.Context, authorUID, authorName string, postID primitive.ObjectID, content string) (*models.Comment, error) {
	if err := s.checkRestricted(ctx, authorUID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &apperrors.ValidationError{Missing: []string{"content"}}
	}

	post, err := s.posts.Get(ctx, models.StatusApproved, postID)
	if err != nil {
		return nil, err
	}
	if post.IsLocked {
		return nil, apperrors.ErrLocked
	}

	now := s.now().Unix()
	comment := &models.Comment{
		PostID:    postID,
		Content:   content,
		Author:    authorName,
		AuthorID:  authorUID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ForumService) Comments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

func (s *ForumService) LikeComment(ctx context.Context, commentID primitive.ObjectID) error {
	return s.comments.IncLikes(ctx, commentID)
}

func (s *ForumService) checkRestricted(ctx context.Context, uid string) error {
	user, err := s.users.Get(ctx, uid)
	if errors.Is(err, apperrors.ErrNotFound) {
		// No mirror document means no restriction on record.
		return nil
	}
	if err != nil {
		return err
	}
	if user.Restricted {
		return apperrors.ErrRestricted
	}
	return nil
}
