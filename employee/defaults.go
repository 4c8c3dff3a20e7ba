package employee

import (
	"time"

	"github.com/devshahoriar/custom-form/form"
	"github.com/devshahoriar/custom-form/upload"
)

// Defaults returns the initial value tree of a new record. Dates default
// to today.
func Defaults() form.Values {
	return DefaultsAt(time.Now())
}

// DefaultsAt is Defaults with an explicit clock.
func DefaultsAt(now time.Time) form.Values {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return form.Values{
		"personalInformation": map[string]any{
			"firstName":     "",
			"lastName":      "",
			"userName":      "",
			"dateOfBirth":   today,
			"profileImage":  []upload.File{},
			"password":      "",
			"gender":        "male",
			"contactNumber": "",
			"email":         "",
			"homeAddress":   "",
			"emergencyContact": map[string]any{
				"name":          "",
				"relationship":  "",
				"contactNumber": "",
			},
		},
		"employmentDetails": map[string]any{
			"jobTitle":         "",
			"department":       "",
			"employeeId":       "",
			"joiningDate":      today,
			"reportingManager": "",
			"jobType":          JobFullTime,
			"salary":           "",
		},
		"professionalExperience": []any{},
		"skillsAndGoals": map[string]any{
			"skills": []any{},
			"goal":   "",
		},
		"policyAgreement": map[string]any{
			"termsOfService": false,
			"privacyPolicy":  false,
			"codeOfConduct":  false,
		},
		"confirmation": map[string]any{
			"confirm": false,
		},
	}
}

// NewExperience returns the row appended by "add experience".
func NewExperience(now time.Time) map[string]any {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return map[string]any{
		"companyName": "",
		"jobTitle":    "",
		"startDate":   today,
		"endDate":     today,
		"jobSummary":  "",
	}
}

// Redacted returns a copy safe to print.
func (e Employee) Redacted() Employee {
	if e.PersonalInformation.Password != "" {
		e.PersonalInformation.Password = "********"
	}
	e.ProfessionalExperience = append([]Experience(nil), e.ProfessionalExperience...)
	return e
}
