package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ApplicationStatus is the review state of a membership application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Accepted choice values for the enumerated application fields.
var (
	Genders = []string{"male", "female", "other", "prefer-not-to-say"}

	Regions = []string{"dar-es-salaam", "arusha", "dodoma", "mbeya", "mwanza", "other"}

	EducationLevels = []string{"primary", "secondary", "diploma", "bachelor", "master", "phd", "other"}

	Referrals = []string{"friend", "social-media", "event", "search", "other"}
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// WorkExperience is one entry of an applicant's employment history.
type WorkExperience struct {
	JobTitle         string `json:"job_title"`
	Company          string `json:"company"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Responsibilities string `json:"responsibilities"`
}

// Summary renders "title at company", or just the title.
func (w WorkExperience) Summary() string {
	if w.Company == "" {
		return w.JobTitle
	}
	return w.JobTitle + " at " + w.Company
}

// MembershipApplication is a stored intake record.
type MembershipApplication struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	DateOfBirth    time.Time         `json:"date_of_birth"`
	Gender         string            `json:"gender"`
	IDNumber       string            `json:"id_number"`
	CurrentAddress string            `json:"current_address"`
	Region         string            `json:"region"`
	District       string            `json:"district"`
	Education      string            `json:"education"`
	Occupation     string            `json:"occupation"`
	WorkExperience []WorkExperience  `json:"work_experience"`
	Skills         []string          `json:"skills"`
	Languages      []string          `json:"languages"`
	WhyJoin        string            `json:"why_join"`
	Contribution   string            `json:"contribution"`
	Expectations   string            `json:"expectations"`
	Referral       string            `json:"referral"`
	AgreeTerms     bool              `json:"agree_terms"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// FullName joins first and last name.
func (a *MembershipApplication) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// StringList decodes either a JSON array of strings or a single string.
// A string is read as a JSON-encoded array when it looks like one, and as
// a comma separated list otherwise.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = cleanList(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("expected a string or an array of strings")
	}
	*l = ParseStringList(s)
	return nil
}

// ParseStringList normalizes a free-form list value.
func ParseStringList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return cleanList(items)
		}
	}
	return cleanList(strings.Split(s, ","))
}

// cleanList trims entries and drops empties and repeats, keeping first-seen order.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		key := strings.ToLower(it)
		if it == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// ApplicationInput is the accepted shape of a membership application,
// whether it arrives as JSON or as an HTML form.
type ApplicationInput struct {
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	DateOfBirth    string           `json:"date_of_birth"`
	Gender         string           `json:"gender"`
	IDNumber       string           `json:"id_number"`
	CurrentAddress string           `json:"current_address"`
	Region         string           `json:"region"`
	District       string           `json:"district"`
	Education      string           `json:"education"`
	Occupation     string           `json:"occupation"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Skills         StringList       `json:"skills"`
	Languages      StringList       `json:"languages"`
	WhyJoin        string           `json:"why_join"`
	Contribution   string           `json:"contribution"`
	Expectations   string           `json:"expectations"`
	Referral       string           `json:"referral"`
	AgreeTerms     bool             `json:"agree_terms"`
}

// ApplicationInputFromForm reads a form submission. Work experience comes
// as numbered field groups (job_title_1, company_1, ...) starting at 1 and
// ending at the first missing job_title_N key.
func ApplicationInputFromForm(form url.Values) ApplicationInput {
	in := ApplicationInput{
		FirstName:      form.Get("first_name"),
		LastName:       form.Get("last_name"),
		Email:          form.Get("email"),
		Phone:          form.Get("phone"),
		DateOfBirth:    form.Get("date_of_birth"),
		Gender:         form.Get("gender"),
		IDNumber:       form.Get("id_number"),
		CurrentAddress: form.Get("current_address"),
		Region:         form.Get("region"),
		District:       form.Get("district"),
		Education:      form.Get("education"),
		Occupation:     form.Get("occupation"),
		WhyJoin:        form.Get("why_join"),
		Contribution:   form.Get("contribution"),
		Expectations:   form.Get("expectations"),
		Referral:       form.Get("referral"),
		AgreeTerms:     formBool(form.Get("agree_terms")),
	}
	in.Skills = formList(form["skills"])
	in.Languages = formList(form["languages"])

	for n := 1; ; n++ {
		suffix := "_" + strconv.Itoa(n)
		if _, ok := form["job_title"+suffix]; !ok {
			break
		}
		in.WorkExperience = append(in.WorkExperience, WorkExperience{
			JobTitle:         form.Get("job_title" + suffix),
			Company:          form.Get("company" + suffix),
			StartDate:        form.Get("start_date" + suffix),
			EndDate:          form.Get("end_date" + suffix),
			Responsibilities: form.Get("responsibilities" + suffix),
		})
	}
	return in
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// formList accepts repeated keys or a single free-form value.
func formList(values []string) StringList {
	if len(values) == 1 {
		return ParseStringList(values[0])
	}
	return cleanList(values)
}

// Normalize validates the input and builds a pending application.
// now is used to reject birth dates in the future.
func (in ApplicationInput) Normalize(now time.Time) (*MembershipApplication, error) {
	app := &MembershipApplication{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:          strings.TrimSpace(in.Phone),
		Gender:         strings.TrimSpace(in.Gender),
		IDNumber:       strings.TrimSpace(in.IDNumber),
		CurrentAddress: strings.TrimSpace(in.CurrentAddress),
		Region:         strings.TrimSpace(in.Region),
		District:       strings.TrimSpace(in.District),
		Education:      strings.TrimSpace(in.Education),
		Occupation:     strings.TrimSpace(in.Occupation),
		Skills:         cleanList(in.Skills),
		Languages:      cleanList(in.Languages),
		WhyJoin:        strings.TrimSpace(in.WhyJoin),
		Contribution:   strings.TrimSpace(in.Contribution),
		Expectations:   strings.TrimSpace(in.Expectations),
		Referral:       strings.TrimSpace(in.Referral),
		AgreeTerms:     in.AgreeTerms,
		Status:         ApplicationPending,
	}

	required := []struct {
		field, value string
	}{
		{"first_name", app.FirstName},
		{"last_name", app.LastName},
		{"email", app.Email},
		{"phone", app.Phone},
		{"date_of_birth", strings.TrimSpace(in.DateOfBirth)},
		{"gender", app.Gender},
		{"id_number", app.IDNumber},
		{"current_address", app.CurrentAddress},
		{"region", app.Region},
		{"district", app.District},
		{"education", app.Education},
		{"occupation", app.Occupation},
		{"why_join", app.WhyJoin},
		{"contribution", app.Contribution},
		{"expectations", app.Expectations},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, invalid(r.field, "is required")
		}
	}

	if err := checkLengths(
		fieldLimit{"first_name", app.FirstName, 100},
		fieldLimit{"last_name", app.LastName, 100},
		fieldLimit{"email", app.Email, 254},
		fieldLimit{"phone", app.Phone, 20},
		fieldLimit{"id_number", app.IDNumber, 50},
		fieldLimit{"district", app.District, 100},
		fieldLimit{"occupation", app.Occupation, 200},
	); err != nil {
		return nil, err
	}
	if !IsValidEmail(app.Email) {
		return nil, invalid("email", "is not a valid email address")
	}
	dob, err := time.Parse(DateLayout, strings.TrimSpace(in.DateOfBirth))
	if err != nil {
		return nil, invalid("date_of_birth", "must be a date in YYYY-MM-DD format")
	}
	if !dob.Before(now) {
		return nil, invalid("date_of_birth", "must be in the past")
	}
	app.DateOfBirth = dob

	if err := checkChoice("gender", app.Gender, Genders); err != nil {
		return nil, err
	}
	if err := checkChoice("region", app.Region, Regions); err != nil {
		return nil, err
	}
	if err := checkChoice("education", app.Education, EducationLevels); err != nil {
		return nil, err
	}
	if app.Referral != "" {
		if err := checkChoice("referral", app.Referral, Referrals); err != nil {
			return nil, err
		}
	}
	if !app.AgreeTerms {
		return nil, invalid("agree_terms", "terms must be accepted")
	}

	app.WorkExperience = normalizeWorkExperience(in.WorkExperience)
	return app, nil
}

func checkChoice(field, value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return invalid(field, fmt.Sprintf("must be one of %s", strings.Join(choices, ", ")))
}

// normalizeWorkExperience trims every entry and drops those without a job title.
func normalizeWorkExperience(entries []WorkExperience) []WorkExperience {
	out := make([]WorkExperience, 0, len(entries))
	for _, e := range entries {
		e = WorkExperience{
			JobTitle:         strings.TrimSpace(e.JobTitle),
			Company:          strings.TrimSpace(e.Company),
			StartDate:        strings.TrimSpace(e.StartDate),
			EndDate:          strings.TrimSpace(e.EndDate),
			Responsibilities: strings.TrimSpace(e.Responsibilities),
		}
		if e.JobTitle == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
