package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/Shivanand-hulikatti/community-hub/internal/repository"
)

// MemberService links authentication principals to member profiles.
type MemberService struct {
	members MemberStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewMemberService constructs a MemberService.
func NewMemberService(members MemberStore, logger *slog.Logger) *MemberService {
	return &MemberService{members: members, logger: logger, now: time.Now}
}

// ResolveMember returns the member for an authentication subject.
func (s *MemberService) ResolveMember(ctx context.Context, subject string) (*model.Member, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fail(NotFound, "User profile not found. Please complete your profile.", nil)
	}
	m, err := s.members.GetByAuthSubject(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fail(NotFound, "User profile not found. Please complete your profile.", err)
		}
		return nil, operationFailed(ctx, s.logger, "ResolveMember", "Could not load your profile", err)
	}
	return m, nil
}

// CompleteProfile creates the subject's member on first call and updates
// its profile afterwards. Membership and admin flags are never touched.
func (s *MemberService) CompleteProfile(ctx context.Context, subject string, in model.ProfileInput) (*model.Member, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fail(InvalidInput, "authentication subject is required", nil)
	}
	in, err := in.Normalize()
	if err != nil {
		return nil, fail(InvalidInput, err.Error(), err)
	}
	m, err := s.members.UpsertProfile(ctx, subject, in, s.now())
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "CompleteProfile", "Could not save your profile", err)
	}
	return m, nil
}
