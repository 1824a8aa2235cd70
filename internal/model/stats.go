package model

import "time"

// StatsRowID keys the single community_stats row.
const StatsRowID = 1

// CommunityStats is the cached aggregate shown on public pages.
// MentorshipPairs and ActiveProjects are configured values, not derived
// from stored data.
type CommunityStats struct {
	ActiveMembers   int       `json:"active_members"`
	TotalEvents     int       `json:"total_events"`
	MentorshipPairs int       `json:"mentorship_pairs"`
	ActiveProjects  int       `json:"active_projects"`
	LastUpdated     time.Time `json:"last_updated"`
}

// IsStale reports whether the row is older than ttl at now.
func (s *CommunityStats) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastUpdated) > ttl
}

// FreshFor returns how long the row stays fresh after now; zero once stale.
func (s *CommunityStats) FreshFor(now time.Time, ttl time.Duration) time.Duration {
	return max(0, ttl-now.Sub(s.LastUpdated))
}

// YearBounds returns [Jan 1 of now's year, Jan 1 of the next year) in UTC.
func YearBounds(now time.Time) (start, end time.Time) {
	y := now.UTC().Year()
	start = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// Dashboard is the admin overview.
type Dashboard struct {
	TotalMembers        int                     `json:"total_members"`
	PendingApplications int                     `json:"pending_applications"`
	TotalEvents         int                     `json:"total_events"`
	UpcomingEvents      int                     `json:"upcoming_events"`
	TotalBookings       int                     `json:"total_bookings"`
	TotalReviews        int                     `json:"total_reviews"`
	RecentApplications  []MembershipApplication `json:"recent_applications"`
	RecentBookings      []RecentBooking         `json:"recent_bookings"`
}
