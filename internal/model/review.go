package model

import (
	"strings"
	"time"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a member's rating of the community. Each member has at most one.
type Review struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsPublic   bool      `json:"is_public"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidateReview checks rating then comment and returns the trimmed comment.
func ValidateReview(rating int, comment string) (string, error) {
	if rating < MinRating || rating > MaxRating {
		return "", ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", ErrEmptyComment
	}
	return comment, nil
}

// ReviewSummary aggregates public reviews.
type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
