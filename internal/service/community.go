package service

import (
	"context"
	"fmt"
	"strings"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/specs"
)

// NewComment is a comment to add. A nil ParentID makes it a top-level comment.
type NewComment struct {
	PostID   int64  `json:"-"`
	ParentID *int64 `json:"parent_id,omitempty"`
	UserID   int64  `json:"user_id"`
	Content  string `json:"content"`
}

// CommunityService handles posts and their comment threads.
type CommunityService interface {
	ListPosts(ctx context.Context, p specs.PostParams) (*repository.PaginationResponse[model.Post], error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)

	// ListComments pages the top-level comments of a post, each with
	// specs.CommentReplyDepth levels of replies loaded.
	ListComments(ctx context.Context, p specs.CommentParams) (*repository.PaginationResponse[model.Comment], error)

	// AddComment stores a top-level comment or a reply. A reply's parent must
	// belong to the same post.
	AddComment(ctx context.Context, c NewComment) (*model.Comment, error)

	// DeletePost removes a post and all of its comments in one commit.
	DeletePost(ctx context.Context, id int64) error
}

type communityService struct {
	uow *repository.Factory
}

var _ CommunityService = (*communityService)(nil)

func NewCommunityService(uow *repository.Factory) CommunityService {
	return &communityService{uow: uow}
}

func (s *communityService) ListPosts(ctx context.Context, p specs.PostParams) (*repository.PaginationResponse[model.Post], error) {
	repo := repository.For[model.Post, int64](s.uow.New())
	return page(ctx, repo, specs.NewPostFilterSpec(p), specs.NewPostCountSpec(p), p.Paging)
}

func (s *communityService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	repo := repository.For[model.Post, int64](s.uow.New())
	post, err := repo.GetWithSpecification(ctx, specs.NewPostDetailSpec(id))
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return post, nil
}

func (s *communityService) ListComments(ctx context.Context, p specs.CommentParams) (*repository.PaginationResponse[model.Comment], error) {
	u := s.uow.New()
	post, err := repository.For[model.Post, int64](u).GetByIDNoTracking(ctx, p.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %d: %w", p.PostID, ErrNotFound)
	}
	repo := repository.For[model.Comment, int64](u)
	return page(ctx, repo, specs.NewCommentThreadSpec(p), specs.NewCommentCountSpec(p), p.Paging)
}

func (s *communityService) AddComment(ctx context.Context, c NewComment) (*model.Comment, error) {
	if strings.TrimSpace(c.Content) == "" {
		return nil, fmt.Errorf("comment content is empty: %w", ErrInvalidInput)
	}

	u := s.uow.New()
	post, err := repository.For[model.Post, int64](u).GetByID(ctx, c.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %d: %w", c.PostID, ErrNotFound)
	}
	author, err := repository.For[model.User, int64](u).GetByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("user %d: %w", c.UserID, ErrNotFound)
	}

	comments := repository.For[model.Comment, int64](u)
	if c.ParentID != nil {
		parent, err := comments.GetByID(ctx, *c.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("comment %d: %w", *c.ParentID, ErrNotFound)
		}
		if parent.PostID != c.PostID {
			return nil, fmt.Errorf("comment %d belongs to another post: %w", parent.ID, ErrInvalidInput)
		}
	}

	comment := &model.Comment{
		PostID:   c.PostID,
		ParentID: c.ParentID,
		UserID:   c.UserID,
		Content:  c.Content,
	}
	comments.Add(comment)
	if _, err := u.Complete(ctx); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (s *communityService) DeletePost(ctx context.Context, id int64) error {
	u := s.uow.New()
	defer u.Rollback()

	posts := repository.For[model.Post, int64](u)
	post, err := posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	if _, err := repository.For[model.Comment, int64](u).DeleteRange(ctx, specs.CommentsOfPost(id)); err != nil {
		return err
	}
	posts.Delete(post)

	if _, err := u.Complete(ctx); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}
