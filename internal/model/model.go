// Package model defines the core domain types for the community hub:
// members, events, bookings, reviews, membership applications, the staff
// team and the cached community statistics.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Domain rule violations. Repositories and services wrap these with context;
// callers match them with errors.Is.
var (
	// ErrNotEligible is returned when a member lacks community membership.
	ErrNotEligible = errors.New("community membership required")

	// ErrNotBookable is returned when an event is expired, full, or not upcoming.
	ErrNotBookable = errors.New("event cannot be booked")

	// ErrAlreadyBooked is returned when the member already holds a booking for the event.
	ErrAlreadyBooked = errors.New("event already booked by member")

	// ErrInvalidRating is returned for ratings outside [MinRating, MaxRating].
	ErrInvalidRating = errors.New("rating out of range")

	// ErrEmptyComment is returned when a review comment is blank.
	ErrEmptyComment = errors.New("comment is required")

	// ErrInvalidTransition is returned for status changes that go backwards.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports a single invalid or missing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets errors.Is(err, ErrInvalidInput) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// fieldLimit is a value and the width of the column it is stored in.
type fieldLimit struct {
	field string
	value string
	max   int
}

// checkLengths returns a ValidationError for the first value longer than
// its limit. Lengths are counted in characters, as VARCHAR(n) does.
func checkLengths(limits ...fieldLimit) error {
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return invalid(l.field, fmt.Sprintf("must be at most %d characters", l.max))
		}
	}
	return nil
}

// Member is a person linked to one authentication principal.
type Member struct {
	ID                string    `json:"id"`
	AuthSubject       string    `json:"-"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Bio               string    `json:"bio"`
	IsCommunityMember bool      `json:"is_community_member"`
	IsAdmin           bool      `json:"is_admin"`
	JoinedAt          time.Time `json:"joined_at"`
}

// FullName joins first and last name.
func (m *Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// ProfileInput carries the fields a member may edit on their own profile.
// Membership and admin flags are deliberately absent.
type ProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

// Normalize trims the input and checks the required fields.
func (p ProfileInput) Normalize() (ProfileInput, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Bio = strings.TrimSpace(p.Bio)

	if p.FirstName == "" {
		return p, invalid("first_name", "is required")
	}
	if p.LastName == "" {
		return p, invalid("last_name", "is required")
	}
	if err := checkLengths(
		fieldLimit{"first_name", p.FirstName, 100},
		fieldLimit{"last_name", p.LastName, 100},
		fieldLimit{"email", p.Email, 254},
		fieldLimit{"phone", p.Phone, 20},
		fieldLimit{"bio", p.Bio, 2000},
	); err != nil {
		return p, err
	}
	if p.Email != "" && !IsValidEmail(p.Email) {
		return p, invalid("email", "is not a valid email address")
	}
	return p, nil
}

// IsValidEmail does a basic structural check.
func IsValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	domain := parts[1]
	return len(parts[0]) > 0 &&
		strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".") &&
		!strings.ContainsAny(email, " \t\r\n")
}
