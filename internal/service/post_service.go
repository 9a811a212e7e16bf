package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blog-service/internal/access"
	"blog-service/internal/events"
	"blog-service/internal/model"
	"blog-service/internal/repository"
	"blog-service/internal/validation"
)

var ErrPostNotFound = errors.New("post not found")

// ValidationError carries every violated rule of a rejected candidate.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d violation(s)", len(e.Violations))
}

type PostService interface {
	List(ctx context.Context, principal model.Principal) ([]model.Post, error)
	Get(ctx context.Context, principal model.Principal, id int64) (*model.Post, error)
	Create(ctx context.Context, principal model.Principal, input model.PostInput) (*model.Post, error)
	Update(ctx context.Context, principal model.Principal, id int64, input model.PostInput) error
	Delete(ctx context.Context, principal model.Principal, id int64) error
}

type postService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	gate      *access.Gate
	validator *validation.Validator
	publisher events.EventPublisher
	metrics   *PostMetrics
	now       func() time.Time
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	gate *access.Gate,
	validator *validation.Validator,
	publisher events.EventPublisher,
	metrics *PostMetrics,
) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		gate:      gate,
		validator: validator,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *postService) List(ctx context.Context, principal model.Principal) ([]model.Post, error) {
	return s.gate.ListVisible(ctx, principal)
}

// Get returns ErrPostNotFound for an unknown id whatever the principal's roles.
func (s *postService) Get(ctx context.Context, principal model.Principal, id int64) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, principal model.Principal, input model.PostInput) (*model.Post, error) {
	if err := s.gate.AuthorizeMutation(principal, nil, access.OpCreate); err != nil {
		s.metrics.denied(access.OpCreate)
		return nil, err
	}

	if violations := s.validator.ValidatePost(input); len(violations) > 0 {
		s.metrics.rejected(access.OpCreate)
		return nil, &ValidationError{Violations: violations}
	}

	post := &model.Post{CreatedAt: s.now()}
	post.Apply(input)
	access.AssignOwner(post, principal)

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, created.OwnerID)
	if err != nil {
		slog.WarnContext(ctx, "Could not load post owner", slog.Int64("user_id", created.OwnerID), slog.String("error", err.Error()))
	}
	created.Owner = owner

	s.metrics.applied(access.OpCreate)
	go s.publisher.PublishPostCreated(created)

	return created, nil
}

// Update applies the present fields of input to the stored post. Owner and
// creation time are never touched.
func (s *postService) Update(ctx context.Context, principal model.Principal, id int64, input model.PostInput) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.gate.AuthorizeMutation(principal, post, access.OpUpdate); err != nil {
		s.metrics.denied(access.OpUpdate)
		slog.InfoContext(ctx, "Post update denied", slog.Int64("post_id", id), slog.Int64("user_id", principal.UserID))
		return err
	}

	post.Apply(input)
	if violations := s.validator.ValidatePost(post.Input()); len(violations) > 0 {
		s.metrics.rejected(access.OpUpdate)
		return &ValidationError{Violations: violations}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return err
	}

	s.metrics.applied(access.OpUpdate)
	go s.publisher.PublishPostUpdated(post, principal.UserID)

	return nil
}

func (s *postService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.gate.AuthorizeMutation(principal, post, access.OpDelete); err != nil {
		s.metrics.denied(access.OpDelete)
		slog.InfoContext(ctx, "Post delete denied", slog.Int64("post_id", id), slog.Int64("user_id", principal.UserID))
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.applied(access.OpDelete)
	go s.publisher.PublishPostDeleted(id, principal.UserID)

	return nil
}
