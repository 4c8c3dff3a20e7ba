// Package employee defines the onboarding record, its defaults and the
// validation rules layered on top of the embedded JSON Schema.
package employee

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/devshahoriar/custom-form/upload"
)

// Job types.
const (
	JobFullTime = "Full-time"
	JobPartTime = "Part-time"
	JobContract = "Contract"
)

// JobTypes lists the accepted job types in display order.
var JobTypes = []string{JobFullTime, JobPartTime, JobContract}

// Genders lists the accepted gender values in display order.
var Genders = []string{"male", "female", "other"}

// Employee is the validated onboarding record.
type Employee struct {
	PersonalInformation    PersonalInformation `json:"personalInformation" yaml:"personalInformation"`
	EmploymentDetails      EmploymentDetails   `json:"employmentDetails" yaml:"employmentDetails"`
	ProfessionalExperience []Experience        `json:"professionalExperience" yaml:"professionalExperience"`
	SkillsAndGoals         SkillsAndGoals      `json:"skillsAndGoals" yaml:"skillsAndGoals"`
	PolicyAgreement        PolicyAgreement     `json:"policyAgreement" yaml:"policyAgreement"`
	Confirmation           Confirmation        `json:"confirmation" yaml:"confirmation"`
}

type PersonalInformation struct {
	FirstName        string           `json:"firstName" yaml:"firstName"`
	LastName         string           `json:"lastName" yaml:"lastName"`
	UserName         string           `json:"userName" yaml:"userName"`
	DateOfBirth      time.Time        `json:"dateOfBirth" yaml:"dateOfBirth"`
	ProfileImage     []upload.File    `json:"profileImage" yaml:"profileImage"`
	Password         string           `json:"password" yaml:"-"`
	Gender           string           `json:"gender" yaml:"gender"`
	ContactNumber    string           `json:"contactNumber" yaml:"contactNumber"`
	Email            string           `json:"email" yaml:"email"`
	HomeAddress      string           `json:"homeAddress" yaml:"homeAddress"`
	EmergencyContact EmergencyContact `json:"emergencyContact" yaml:"emergencyContact"`
}

type EmergencyContact struct {
	Name          string `json:"name" yaml:"name"`
	Relationship  string `json:"relationship" yaml:"relationship"`
	ContactNumber string `json:"contactNumber" yaml:"contactNumber"`
}

type EmploymentDetails struct {
	JobTitle         string    `json:"jobTitle" yaml:"jobTitle"`
	Department       string    `json:"department" yaml:"department"`
	EmployeeID       string    `json:"employeeId" yaml:"employeeId"`
	JoiningDate      time.Time `json:"joiningDate" yaml:"joiningDate"`
	ReportingManager string    `json:"reportingManager" yaml:"reportingManager"`
	JobType          string    `json:"jobType" yaml:"jobType"`
	Salary           Amount    `json:"salary" yaml:"salary"`
}

type Experience struct {
	CompanyName string    `json:"companyName" yaml:"companyName"`
	JobTitle    string    `json:"jobTitle" yaml:"jobTitle"`
	StartDate   time.Time `json:"startDate" yaml:"startDate"`
	EndDate     time.Time `json:"endDate" yaml:"endDate"`
	JobSummary  string    `json:"jobSummary" yaml:"jobSummary"`
}

type SkillsAndGoals struct {
	Skills []string `json:"skills" yaml:"skills"`
	Goal   string   `json:"goal" yaml:"goal"`
}

type PolicyAgreement struct {
	TermsOfService bool `json:"termsOfService" yaml:"termsOfService"`
	PrivacyPolicy  bool `json:"privacyPolicy" yaml:"privacyPolicy"`
	CodeOfConduct  bool `json:"codeOfConduct" yaml:"codeOfConduct"`
}

type Confirmation struct {
	Confirm bool `json:"confirm" yaml:"confirm"`
}

// Amount is an optional positive number. The form collects it as text, so
// it decodes from a JSON number, a numeric string, an empty string or null.
type Amount struct {
	Value float64
	Valid bool
}

// ParseAmount parses the text form of an Amount. Blank input is a valid
// empty Amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return Amount{Value: v, Valid: true}, nil
}

func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}
	*a = Amount{Value: v, Valid: true}
	return nil
}

func (a Amount) MarshalYAML() (any, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Value, nil
}
