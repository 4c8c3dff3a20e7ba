package steps

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devshahoriar/custom-form/employee"
	"github.com/devshahoriar/custom-form/internal/tui"
	"github.com/devshahoriar/custom-form/internal/tui/components"
	"github.com/devshahoriar/custom-form/stepper"
	"github.com/devshahoriar/custom-form/upload"
)

type reviewRow struct {
	label string
	path  string
}

type reviewSection struct {
	title string
	rows  []reviewRow
	// array, when set, lists one row per element of the array at that path.
	array string
}

var reviewSections = []reviewSection{
	{title: "Personal Information", rows: []reviewRow{
		{"First Name", pi + "firstName"},
		{"Last Name", pi + "lastName"},
		{"Username", employee.PathUserName},
		{"Date of Birth", pi + "dateOfBirth"},
		{"Profile Image", pi + "profileImage"},
		{"Password", employee.PathPassword},
		{"Gender", pi + "gender"},
		{"Contact Number", pi + "contactNumber"},
		{"Email", employee.PathEmail},
		{"Home Address", pi + "homeAddress"},
		{"Emergency Contact", pi + "emergencyContact.name"},
		{"Relationship", pi + "emergencyContact.relationship"},
		{"Emergency Number", pi + "emergencyContact.contactNumber"},
	}},
	{title: "Employment Details", rows: []reviewRow{
		{"Job Title", "employmentDetails.jobTitle"},
		{"Department", "employmentDetails.department"},
		{"Employee ID", "employmentDetails.employeeId"},
		{"Joining Date", "employmentDetails.joiningDate"},
		{"Reporting Manager", "employmentDetails.reportingManager"},
		{"Job Type", employee.PathJobType},
		{"Salary", employee.PathSalary},
	}},
	{title: "Professional Experience", array: employee.PathExperience},
	{title: "Skills and Goals", rows: []reviewRow{
		{"Skills", employee.PathSkills},
		{"Career Goals", "skillsAndGoals.goal"},
	}},
	{title: "Policies", rows: []reviewRow{
		{"Terms of Service", "policyAgreement.termsOfService"},
		{"Privacy Policy", "policyAgreement.privacyPolicy"},
		{"Code of Conduct", "policyAgreement.codeOfConduct"},
		{"Data Accuracy", "confirmation.confirm"},
	}},
}

// ReviewStep shows the collected record. Enter submits it.
type ReviewStep struct {
	form   Form
	styles *tui.StyleSet
	boxes  []components.SummaryBox
	kbd    components.KbdHint
}

// NewReviewStep creates the review step over f.
func NewReviewStep(f Form, styles *tui.StyleSet) *ReviewStep {
	return &ReviewStep{
		form:   f,
		styles: styles,
		kbd:    components.NewKbdHint(styles.KbdKey, styles.KbdDesc, components.ReviewHints()...),
	}
}

func (s *ReviewStep) Title() string                  { return "Review & Submit" }
func (s *ReviewStep) Icon() string                   { return "✅" }
func (s *ReviewStep) Summary() string                { return "Check the details before submitting" }
func (s *ReviewStep) Prefixes() []string             { return nil }
func (s *ReviewStep) Validate() stepper.Result       { return stepper.Pass() }
func (s *ReviewStep) Boxes() []components.SummaryBox { return s.boxes }

// Init rebuilds the summary from the current tree.
func (s *ReviewStep) Init() tea.Cmd {
	fs := s.styles.FieldStyles()
	s.boxes = s.boxes[:0]
	for _, sec := range reviewSections {
		var rows []components.SummaryRow
		if sec.array != "" {
			rows = s.experienceRows(sec.array)
		}
		for _, r := range sec.rows {
			rows = append(rows, components.SummaryRow{
				Key:   r.label,
				Value: display(r.path, s.form.Value(r.path)),
				Err:   s.form.Error(r.path),
			})
		}
		s.boxes = append(s.boxes, components.NewSummaryBox(sec.title, rows, fs))
	}
	return nil
}

func (s *ReviewStep) experienceRows(path string) []components.SummaryRow {
	n := s.form.Len(path)
	if n == 0 {
		return []components.SummaryRow{{Key: "Experience", Value: "none"}}
	}
	rows := make([]components.SummaryRow, 0, n)
	for i := 0; i < n; i++ {
		base := path + "." + strconv.Itoa(i)
		company, _ := s.form.Value(base + ".companyName").(string)
		title, _ := s.form.Value(base + ".jobTitle").(string)
		start := display("", s.form.Value(base+".startDate"))
		end := display("", s.form.Value(base+".endDate"))
		value := strings.TrimSpace(fmt.Sprintf("%s · %s (%s → %s)", company, title, start, end))

		var err string
		if errs := s.form.ErrorsUnder(base); len(errs) > 0 {
			err = errs[slices.Sorted(maps.Keys(errs))[0]]
		}
		rows = append(rows, components.SummaryRow{
			Key:   fmt.Sprintf("Experience %d", i+1),
			Value: value,
			Err:   err,
		})
	}
	return rows
}

func (s *ReviewStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return func() tea.Msg { return tui.StepCompleteMsg{} }
	}
	return nil
}

func (s *ReviewStep) View(width int) string {
	var out string
	for _, b := range s.boxes {
		out += b.View(width) + "\n"
	}
	out += "\n  " + s.styles.AccentTxt.Render("Press Enter to add the employee") + "\n\n"
	return out + s.kbd.View() + "\n"
}

// display formats a tree value for the summary.
func display(path string, v any) string {
	if path == employee.PathPassword {
		if s, _ := v.(string); s != "" {
			return strings.Repeat("•", 8)
		}
		return ""
	}
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case time.Time:
		return x.Format(time.DateOnly)
	case []upload.File:
		names := make([]string, len(x))
		for i, f := range x {
			names[i] = f.URL
		}
		return strings.Join(names, ", ")
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			if s := display("", e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(x)
	}
}
