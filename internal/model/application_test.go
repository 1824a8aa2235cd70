package model

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplicationInput() ApplicationInput {
	return ApplicationInput{
		FirstName:      "Neema",
		LastName:       "Mushi",
		Email:          " Neema@Example.COM ",
		Phone:          "+255700000000",
		DateOfBirth:    "1994-02-11",
		Gender:         "female",
		IDNumber:       "19940211-0001",
		CurrentAddress: "Mikocheni",
		Region:         "dar-es-salaam",
		District:       "Kinondoni",
		Education:      "bachelor",
		Occupation:     "Engineer",
		WhyJoin:        "To learn",
		Contribution:   "Mentoring",
		Expectations:   "Growth",
		AgreeTerms:     true,
	}
}

func TestApplicationNormalize(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	in := validApplicationInput()
	in.Skills = StringList{"Go", " go ", "SQL", ""}
	in.WorkExperience = []WorkExperience{
		{JobTitle: " Engineer ", Company: "Acme"},
		{JobTitle: "", Company: "Dropped"},
	}

	app, err := in.Normalize(now)
	require.NoError(t, err)
	assert.Equal(t, "neema@example.com", app.Email)
	assert.Equal(t, ApplicationPending, app.Status)
	assert.Equal(t, []string{"Go", "SQL"}, app.Skills)
	require.Len(t, app.WorkExperience, 1)
	assert.Equal(t, "Engineer at Acme", app.WorkExperience[0].Summary())
	assert.Equal(t, time.Date(1994, 2, 11, 0, 0, 0, 0, time.UTC), app.DateOfBirth)
}

func TestApplicationNormalizeRejects(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		field string
		edit  func(in *ApplicationInput)
	}{
		{"missing first name", "first_name", func(in *ApplicationInput) { in.FirstName = "  " }},
		{"bad email", "email", func(in *ApplicationInput) { in.Email = "neema@" }},
		{"bad date", "date_of_birth", func(in *ApplicationInput) { in.DateOfBirth = "11/02/1994" }},
		{"future birth", "date_of_birth", func(in *ApplicationInput) { in.DateOfBirth = "2030-01-01" }},
		{"unknown gender", "gender", func(in *ApplicationInput) { in.Gender = "robot" }},
		{"unknown region", "region", func(in *ApplicationInput) { in.Region = "atlantis" }},
		{"unknown referral", "referral", func(in *ApplicationInput) { in.Referral = "billboard" }},
		{"terms not accepted", "agree_terms", func(in *ApplicationInput) { in.AgreeTerms = false }},
		{"first name too long", "first_name", func(in *ApplicationInput) { in.FirstName = strings.Repeat("A", 150) }},
		{"phone too long", "phone", func(in *ApplicationInput) { in.Phone = strings.Repeat("7", 40) }},
		{"id number too long", "id_number", func(in *ApplicationInput) { in.IDNumber = strings.Repeat("9", 80) }},
		{"district too long", "district", func(in *ApplicationInput) { in.District = strings.Repeat("d", 101) }},
		{"occupation too long", "occupation", func(in *ApplicationInput) { in.Occupation = strings.Repeat("o", 201) }},
		{"email too long", "email", func(in *ApplicationInput) { in.Email = strings.Repeat("a", 250) + "@example.com" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validApplicationInput()
			tt.edit(&in)
			_, err := in.Normalize(now)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestApplicationNormalizeCountsCharacters(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	in := validApplicationInput()
	in.FirstName = strings.Repeat("é", 100)
	in.District = strings.Repeat("ü", 100)
	app, err := in.Normalize(now)
	require.NoError(t, err)
	assert.Len(t, []rune(app.FirstName), 100)

	in.FirstName += "é"
	_, err = in.Normalize(now)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "first_name", ve.Field)
	assert.Equal(t, "first_name: must be at most 100 characters", ve.Error())
}

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want StringList
	}{
		{`["English","Swahili"]`, StringList{"English", "Swahili"}},
		{`"[\"English\", \"French\"]"`, StringList{"English", "French"}},
		{`"go, sql ,, Go"`, StringList{"go", "sql"}},
		{`""`, nil},
	}
	for _, tt := range tests {
		var got StringList
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &got), tt.raw)
		if tt.want == nil {
			assert.Empty(t, got, tt.raw)
			continue
		}
		assert.Equal(t, tt.want, got, tt.raw)
	}

	var bad StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestApplicationInputFromForm(t *testing.T) {
	form := url.Values{
		"first_name":          {"Neema"},
		"agree_terms":         {"on"},
		"languages":           {"English", "Swahili"},
		"skills":              {`["Go","SQL"]`},
		"job_title_1":         {"Engineer"},
		"company_1":           {"Acme"},
		"responsibilities_1":  {"APIs"},
		"job_title_2":         {"Intern"},
		"job_title_4":         {"skipped after gap"},
		"unrelated_field_key": {"x"},
	}

	in := ApplicationInputFromForm(form)
	assert.Equal(t, "Neema", in.FirstName)
	assert.True(t, in.AgreeTerms)
	assert.Equal(t, StringList{"English", "Swahili"}, in.Languages)
	assert.Equal(t, StringList{"Go", "SQL"}, in.Skills)
	require.Len(t, in.WorkExperience, 2)
	assert.Equal(t, "APIs", in.WorkExperience[0].Responsibilities)
	assert.Equal(t, "Intern", in.WorkExperience[1].JobTitle)

	assert.False(t, ApplicationInputFromForm(url.Values{"agree_terms": {"off"}}).AgreeTerms)
}
