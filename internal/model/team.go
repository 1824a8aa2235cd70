package model

import (
	"net/url"
	"strings"
	"time"
)

// TeamPosition is a staff role shown on the about page.
type TeamPosition string

const (
	PositionFounder     TeamPosition = "founder"
	PositionCoordinator TeamPosition = "coordinator"
	PositionManager     TeamPosition = "manager"
	PositionMentor      TeamPosition = "mentor"
	PositionAdvisor     TeamPosition = "advisor"
	PositionOther       TeamPosition = "other"
)

var positionLabels = map[TeamPosition]string{
	PositionFounder:     "Founder & Director",
	PositionCoordinator: "Programs Coordinator",
	PositionManager:     "Community Manager",
	PositionMentor:      "Senior Mentor",
	PositionAdvisor:     "Advisor",
	PositionOther:       "Other",
}

// Valid reports whether p is a known position.
func (p TeamPosition) Valid() bool {
	_, ok := positionLabels[p]
	return ok
}

// Label is the display title, or the raw value for unknown positions.
func (p TeamPosition) Label() string {
	if l, ok := positionLabels[p]; ok {
		return l
	}
	return string(p)
}

// TeamMember is a staff profile. Lists are ordered by SortOrder, then Name.
type TeamMember struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Position      TeamPosition `json:"position"`
	PositionLabel string       `json:"position_label"`
	Bio           string       `json:"bio"`
	Quote         string       `json:"quote"`
	ImageURL      string       `json:"image_url,omitempty"`
	Email         string       `json:"email,omitempty"`
	LinkedIn      string       `json:"linkedin,omitempty"`
	SortOrder     int          `json:"order"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
}

// TeamMemberInput is the admin payload for adding a team member.
// IsActive defaults to true when omitted.
type TeamMemberInput struct {
	Name      string       `json:"name"`
	Position  TeamPosition `json:"position"`
	Bio       string       `json:"bio"`
	Quote     string       `json:"quote"`
	ImageURL  string       `json:"image_url"`
	Email     string       `json:"email"`
	LinkedIn  string       `json:"linkedin"`
	SortOrder int          `json:"order"`
	IsActive  *bool        `json:"is_active"`
}

// Normalize trims the input and checks it against the column bounds.
func (in TeamMemberInput) Normalize() (TeamMemberInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = TeamPosition(strings.ToLower(strings.TrimSpace(string(in.Position))))
	in.Bio = strings.TrimSpace(in.Bio)
	in.Quote = strings.TrimSpace(in.Quote)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.LinkedIn = strings.TrimSpace(in.LinkedIn)
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}

	switch {
	case in.Name == "":
		return in, invalid("name", "is required")
	case !in.Position.Valid():
		return in, invalid("position", "is not a known position")
	case in.SortOrder < 0:
		return in, invalid("order", "must not be negative")
	}
	if err := checkLengths(
		fieldLimit{"name", in.Name, 100},
		fieldLimit{"email", in.Email, 254},
		fieldLimit{"linkedin", in.LinkedIn, 200},
		fieldLimit{"image_url", in.ImageURL, 500},
	); err != nil {
		return in, err
	}
	if in.Email != "" && !IsValidEmail(in.Email) {
		return in, invalid("email", "is not a valid email address")
	}
	if in.LinkedIn != "" && !isWebURL(in.LinkedIn) {
		return in, invalid("linkedin", "must be an http or https URL")
	}
	if in.ImageURL != "" && !isWebURL(in.ImageURL) {
		return in, invalid("image_url", "must be an http or https URL")
	}
	return in, nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
