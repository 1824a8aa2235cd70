package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
	"github.com/Shivanand-hulikatti/community-hub/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultReviewLimit = 20
	maxReviewLimit     = 100
)

// ReviewService manages the one review each community member may keep.
type ReviewService struct {
	members MemberStore
	reviews ReviewStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewReviewService constructs a ReviewService.
func NewReviewService(members MemberStore, reviews ReviewStore, logger *slog.Logger) *ReviewService {
	return &ReviewService{members: members, reviews: reviews, logger: logger, now: time.Now}
}

// SubmitReview creates the member's review, or overwrites it and makes it
// public again. created reports which happened.
func (s *ReviewService) SubmitReview(ctx context.Context, memberID string, rating int, comment string) (review *model.Review, created bool, err error) {
	ctx, span := observability.StartSpan(ctx, "review.SubmitReview",
		attribute.String("member.id", memberID),
		attribute.Int("review.rating", rating),
	)
	defer func() { observability.EndSpan(span, err) }()

	if !validID(memberID) {
		return nil, false, fail(NotFound, "User profile not found", nil)
	}
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, fail(NotFound, "User profile not found", err)
		}
		return nil, false, operationFailed(ctx, s.logger, "SubmitReview",
			"An error occurred while submitting your review", err, slog.String("member_id", memberID))
	}
	if !member.IsCommunityMember {
		return nil, false, fail(NotEligible, "You must be a community member to submit reviews", model.ErrNotEligible)
	}

	comment, err = model.ValidateReview(rating, comment)
	switch {
	case errors.Is(err, model.ErrInvalidRating):
		return nil, false, fail(InvalidRating, "Rating must be between 1 and 5 stars", err)
	case errors.Is(err, model.ErrEmptyComment):
		return nil, false, fail(EmptyComment, "Comment is required", err)
	}

	review, created, err = s.reviews.Upsert(ctx, memberID, rating, comment, s.now())
	if err != nil {
		return nil, false, operationFailed(ctx, s.logger, "SubmitReview",
			"An error occurred while submitting your review", err, slog.String("member_id", memberID))
	}
	review.MemberName = member.FullName()

	result := "updated"
	if created {
		result = "created"
	}
	observability.ReviewsSubmitted.WithLabelValues(result).Inc()
	return review, created, nil
}

// ReviewFeed is the public review listing with its aggregate.
type ReviewFeed struct {
	Reviews []model.Review      `json:"reviews"`
	Summary model.ReviewSummary `json:"summary"`
}

// ListPublicReviews returns up to limit public reviews, newest first, and
// the count and average rating over all public reviews.
func (s *ReviewService) ListPublicReviews(ctx context.Context, limit int) (*ReviewFeed, error) {
	limit = clampLimit(limit, defaultReviewLimit, maxReviewLimit)

	reviews, err := s.reviews.ListPublic(ctx, limit)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListPublicReviews", "Could not load reviews", err)
	}
	summary, err := s.reviews.PublicSummary(ctx)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListPublicReviews", "Could not load reviews", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return &ReviewFeed{Reviews: reviews, Summary: summary}, nil
}
