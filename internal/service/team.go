package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
)

// TeamService manages the staff profiles on the about page.
type TeamService struct {
	team   TeamStore
	logger *slog.Logger
	now    func() time.Time
}

// NewTeamService constructs a TeamService.
func NewTeamService(team TeamStore, logger *slog.Logger) *TeamService {
	return &TeamService{team: team, logger: logger, now: time.Now}
}

// ListTeam returns the active team in display order.
func (s *TeamService) ListTeam(ctx context.Context) ([]model.TeamMember, error) {
	members, err := s.team.ListActive(ctx)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListTeam", "Could not load the team", err)
	}
	return nonNilTeam(members), nil
}

// ListAllTeam includes inactive members, for admins.
func (s *TeamService) ListAllTeam(ctx context.Context) ([]model.TeamMember, error) {
	members, err := s.team.ListAll(ctx)
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "ListAllTeam", "Could not load the team", err)
	}
	return nonNilTeam(members), nil
}

// AddTeamMember validates and stores a new team member.
func (s *TeamService) AddTeamMember(ctx context.Context, in model.TeamMemberInput) (*model.TeamMember, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, fail(InvalidInput, err.Error(), err)
	}
	m, err := s.team.Create(ctx, in, s.now())
	if err != nil {
		return nil, operationFailed(ctx, s.logger, "AddTeamMember", "Could not save the team member", err)
	}
	s.logger.InfoContext(ctx, "team member added",
		slog.String("team_member_id", m.ID),
		slog.String("position", string(m.Position)),
	)
	return m, nil
}

func nonNilTeam(ms []model.TeamMember) []model.TeamMember {
	if ms == nil {
		return []model.TeamMember{}
	}
	return ms
}
