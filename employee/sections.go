package employee

// Section is one page of the wizard and the value-tree prefixes it gates.
type Section struct {
	Title       string
	Description string
	Prefixes    []string
}

// Sections returns the wizard pages in order.
func Sections() []Section {
	return []Section{
		{
			Title:       "Personal Information",
			Description: "Please fill in your personal details",
			Prefixes:    []string{"personalInformation"},
		},
		{
			Title:       "Employment Details",
			Description: "Please provide your employment information",
			Prefixes:    []string{"employmentDetails"},
		},
		{
			Title:       "Professional Experience",
			Description: "Add your previous work experiences",
			Prefixes:    []string{PathExperience},
		},
		{
			Title:       "Skills and Goals",
			Description: "Share your skills and career goals",
			Prefixes:    []string{"skillsAndGoals"},
		},
		{
			Title:       "Policy Agreement",
			Description: "Please review and accept our policies",
			Prefixes:    []string{"policyAgreement", "confirmation"},
		},
	}
}
