package steps

import (
	"time"

	"github.com/devshahoriar/custom-form/employee"
	"github.com/devshahoriar/custom-form/internal/tui"
	"github.com/devshahoriar/custom-form/internal/tui/components"
	"github.com/devshahoriar/custom-form/upload"
	"github.com/devshahoriar/custom-form/util"
)

// Deps are shared by every step builder.
type Deps struct {
	Form     Form
	Styles   *tui.StyleSet
	Uploader upload.Uploader
	// MaxFiles caps the profile image drop zone.
	MaxFiles int
	// Now stamps the dates of appended experience rows.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

const pi = "personalInformation."

// Personal builds the personal information step.
func Personal(d Deps) *FormStep {
	fs := d.Styles.FieldStyles()
	rules := employee.PasswordRules()
	reqs := make([]components.Requirement, len(rules))
	for i, r := range rules {
		reqs[i] = components.Requirement{Label: r.Label, Match: r.Match}
	}

	userName := components.NewTextInput(employee.PathUserName, "Username", "Enter your username", fs)
	step := NewFormStep(employee.Sections()[0], "👤", d.Form, d.Styles,
		components.NewTextInput(pi+"firstName", "First Name", "Enter your first name", fs),
		components.NewTextInput(pi+"lastName", "Last Name", "Enter your last name", fs),
		userName,
		components.NewDateInput(pi+"dateOfBirth", "Date of Birth", fs),
		components.NewDropZone(pi+"profileImage", "Profile Image", d.Uploader, d.MaxFiles, fs),
		components.NewPasswordInput(employee.PathPassword, "Password", reqs, fs),
		components.NewSelect(pi+"gender", "Gender", components.OptionsFrom(employee.Genders...), fs),
		components.NewTextInput(pi+"contactNumber", "Contact Number", "Enter your contact number", fs),
		components.NewTextInput(employee.PathEmail, "Email", "Enter your email address", fs),
		components.NewTextInput(pi+"homeAddress", "Home Address", "Enter your home address", fs),
		components.NewTextInput(pi+"emergencyContact.name", "Contact Name", "Enter emergency contact name", fs),
		components.NewTextInput(pi+"emergencyContact.relationship", "Relationship", "Enter relationship (e.g., spouse, parent)", fs),
		components.NewTextInput(pi+"emergencyContact.contactNumber", "Emergency Contact Number", "Enter emergency contact number", fs),
	)

	// Offer a username built from the name while none is typed.
	step.changed = func() {
		userName.Hint = ""
		if userName.Value() != "" {
			return
		}
		first, _ := d.Form.Value(pi + "firstName").(string)
		last, _ := d.Form.Value(pi + "lastName").(string)
		if s := util.SuggestUserName(first, last); s != "" {
			userName.Hint = "Suggestion: " + s
		}
	}
	step.changed()
	return step
}

// Employment builds the employment details step.
func Employment(d Deps) *FormStep {
	const ed = "employmentDetails."
	fs := d.Styles.FieldStyles()
	return NewFormStep(employee.Sections()[1], "💼", d.Form, d.Styles,
		components.NewTextInput(ed+"jobTitle", "Job Title", "Enter your job title", fs),
		components.NewTextInput(ed+"department", "Department", "Enter your department", fs),
		components.NewTextInput(ed+"employeeId", "Employee ID", "Enter employee ID", fs),
		components.NewDateInput(ed+"joiningDate", "Joining Date", fs),
		components.NewTextInput(ed+"reportingManager", "Reporting Manager", "Enter reporting manager name", fs),
		components.NewSelect(employee.PathJobType, "Job Type", components.OptionsFrom(employee.JobTypes...), fs),
		components.NewNumberInput(employee.PathSalary, "Salary", "Enter salary amount", fs),
	)
}

// Experience builds the professional experience step.
func Experience(d Deps) *FormStep {
	fs := d.Styles.FieldStyles()
	row := func(base string) []components.Field {
		return []components.Field{
			components.NewTextInput(base+".companyName", "Company Name", "Enter company name", fs),
			components.NewTextInput(base+".jobTitle", "Job Title", "Enter job title", fs),
			components.NewDateInput(base+".startDate", "Start Date", fs),
			components.NewDateInput(base+".endDate", "End Date", fs),
			components.NewTextArea(base+".jobSummary", "Job Summary", "Describe your role and responsibilities", fs),
		}
	}
	newRow := func() any { return employee.NewExperience(d.now()) }
	return NewFormStep(employee.Sections()[2], "🏢", d.Form, d.Styles,
		components.NewArrayField(employee.PathExperience, "Experience", "experience", newRow, row, fs),
	)
}

// Skills builds the skills and goals step.
func Skills(d Deps) *FormStep {
	fs := d.Styles.FieldStyles()
	row := func(base string) []components.Field {
		return []components.Field{components.NewTextInput(base, "Skill", "Enter a skill", fs)}
	}
	newRow := func() any { return "" }
	return NewFormStep(employee.Sections()[3], "🎯", d.Form, d.Styles,
		components.NewArrayField(employee.PathSkills, "Skills", "skill", newRow, row, fs),
		components.NewTextArea("skillsAndGoals.goal", "Career Goals", "Describe your career goals and aspirations", fs),
	)
}

// Policies builds the policy agreement step.
func Policies(d Deps) *FormStep {
	const pa = "policyAgreement."
	fs := d.Styles.FieldStyles()
	return NewFormStep(employee.Sections()[4], "📜", d.Form, d.Styles,
		components.NewCheckbox(pa+"termsOfService", "Terms of Service", "I agree to the company's Terms of Service", fs),
		components.NewCheckbox(pa+"privacyPolicy", "Privacy Policy", "I agree to the company's Privacy Policy", fs),
		components.NewCheckbox(pa+"codeOfConduct", "Code of Conduct", "I agree to follow the company's Code of Conduct", fs),
		components.NewCheckbox("confirmation.confirm", "Data Accuracy Confirmation",
			"I confirm that all the information provided above is accurate and complete", fs),
	)
}

// All returns the wizard steps in order, ending with the review.
func All(d Deps) []tui.Step {
	return []tui.Step{
		Personal(d),
		Employment(d),
		Experience(d),
		Skills(d),
		Policies(d),
		NewReviewStep(d.Form, d.Styles),
	}
}

// Reload copies the value tree into every form step, e.g. after a reset.
func Reload(steps []tui.Step) {
	for _, s := range steps {
		if r, ok := s.(interface{ Reload() }); ok {
			r.Reload()
		}
	}
}
