package employee

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/devshahoriar/custom-form/form"
	"github.com/devshahoriar/custom-form/schema"
	"github.com/devshahoriar/custom-form/schemas"
)

// Paths the Go-side rules attach to.
const (
	PathUserName   = "personalInformation.userName"
	PathEmail      = "personalInformation.email"
	PathPassword   = "personalInformation.password"
	PathJobType    = "employmentDetails.jobType"
	PathSalary     = "employmentDetails.salary"
	PathExperience = "professionalExperience"
	PathSkills     = "skillsAndGoals.skills"
)

const minPasswordLength = 8

// PasswordRule is one requirement shown next to the password field.
type PasswordRule struct {
	Label   string
	Message string
	Match   func(string) bool
}

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PasswordRules lists the password requirements in display order.
func PasswordRules() []PasswordRule {
	return []PasswordRule{
		{
			Label:   fmt.Sprintf("At least %d characters", minPasswordLength),
			Message: fmt.Sprintf("Password must be at least %d characters long", minPasswordLength),
			Match:   func(s string) bool { return len([]rune(s)) >= minPasswordLength },
		},
		{
			Label:   "One uppercase letter",
			Message: "Password must contain at least one uppercase letter",
			Match:   upperRe.MatchString,
		},
		{
			Label:   "One lowercase letter",
			Message: "Password must contain at least one lowercase letter",
			Match:   lowerRe.MatchString,
		},
		{
			Label:   "One number",
			Message: "Password must contain at least one number",
			Match:   digitRe.MatchString,
		},
		{
			Label:   "One special character",
			Message: "Password must contain at least one special character",
			Match:   specialRe.MatchString,
		},
	}
}

// NewSchema compiles the employee document with its Go-side rules.
// Uniqueness checks query dir; a nil dir skips them.
func NewSchema(dir Directory) (*schema.Schema, error) {
	opts := []schema.Option{
		schema.WithCheck(passwordChecks()...),
		schema.WithCheck(schema.Check{
			Path:    PathSalary,
			Code:    schema.CodeTooSmall,
			Message: "Salary must be a positive number",
			Fn:      salaryValid,
		}),
		schema.WithRefinement(salaryRequiredForFullTime, experienceDatesOrdered),
	}
	if dir != nil {
		opts = append(opts, schema.WithAsyncCheck(
			schema.AsyncCheck{
				Path:    PathUserName,
				Code:    schema.CodeUniqueness,
				Message: "User Name already exists",
				Fn: func(ctx context.Context, v any) (bool, error) {
					name, _ := v.(string)
					taken, err := dir.UserNameTaken(ctx, name)
					return !taken, err
				},
			},
			schema.AsyncCheck{
				Path:    PathEmail,
				Code:    schema.CodeUniqueness,
				Message: "Email already exists",
				Fn: func(ctx context.Context, v any) (bool, error) {
					email, _ := v.(string)
					taken, err := dir.EmailTaken(ctx, email)
					return !taken, err
				},
			},
		))
	}

	s, err := schema.Compile(schemas.EmployeeV1, opts...)
	if err != nil {
		return nil, fmt.Errorf("compiling employee schema: %w", err)
	}
	return s, nil
}

func passwordChecks() []schema.Check {
	var checks []schema.Check
	for _, r := range PasswordRules()[1:] {
		match := r.Match
		checks = append(checks, schema.Check{
			Path:    PathPassword,
			Code:    schema.CodePattern,
			Message: r.Message,
			Fn: func(v any) bool {
				s, _ := v.(string)
				return match(s)
			},
		})
	}
	return checks
}

// salaryValid accepts a blank salary or a positive number in either text
// or numeric form.
func salaryValid(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		if strings.TrimSpace(x) == "" {
			return true
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return err == nil && f > 0
	case float64:
		return x > 0
	case int:
		return x > 0
	default:
		return false
	}
}

func salaryPresent(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != "" && salaryValid(x)
	default:
		return salaryValid(x)
	}
}

func salaryRequiredForFullTime(root map[string]any) schema.Issues {
	tree := form.Values(root)
	jobType, _ := tree.Get(PathJobType)
	if jobType != JobFullTime {
		return nil
	}
	salary, _ := tree.Get(PathSalary)
	if salaryPresent(salary) {
		return nil
	}
	return schema.Issues{{
		Path:    PathSalary,
		Code:    schema.CodeCustom,
		Message: "Salary is required for Full-time employees and must be a positive number",
	}}
}

func experienceDatesOrdered(root map[string]any) schema.Issues {
	rows, err := form.Values(root).Array(PathExperience)
	if err != nil {
		return nil
	}
	var iss schema.Issues
	for i, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		start, okStart := AsTime(m["startDate"])
		end, okEnd := AsTime(m["endDate"])
		if okStart && okEnd && end.Before(start) {
			iss = append(iss, schema.Issue{
				Path:    form.JoinPath(form.IndexPath(PathExperience, i), "endDate"),
				Code:    schema.CodeCustom,
				Message: "End Date cannot be before Start Date",
			})
		}
	}
	return iss
}

// AsTime reads a date node. Trees built by the wizard hold time.Time;
// trees decoded from files may hold RFC 3339 or YYYY-MM-DD strings.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, strings.TrimSpace(x)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
