package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devshahoriar/custom-form/employee"
)

const validRecord = `
personalInformation:
  firstName: Ada
  lastName: Lovelace
  userName: ada_l
  dateOfBirth: 1990-12-10
  profileImage:
    - id: f1
      url: mem://f1/ada.png
  password: "Secr3t!pass"
  gender: female
  contactNumber: "0123456789"
  email: ada@example.com
  homeAddress: 12 Analytical Row
  emergencyContact:
    name: Charles
    relationship: Friend
    contactNumber: "+44 0123456789"
employmentDetails:
  jobTitle: Engineer
  department: R&D
  employeeId: E-001
  joiningDate: 2024-02-01
  reportingManager: Babbage
  jobType: Full-time
  salary: "5000"
professionalExperience:
  - companyName: Acme
    jobTitle: Analyst
    startDate: 2019-01-01
    endDate: 2020-06-30
    jobSummary: Built difference engines
skillsAndGoals:
  skills: [Go, SQL]
  goal: Lead a team
policyAgreement:
  termsOfService: true
  privacyPolicy: true
  codeOfConduct: true
confirmation:
  confirm: true
`

// execute runs the root command in a scratch directory with fresh flags.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ONBOARD_DIRECTORY_LATENCY", "0s")
	t.Setenv("ONBOARD_LOG_FILE", filepath.Join(dir, "onboard.log"))

	cfgFile, verbose, themeOverride = "", false, ""
	fromFile, outputFormat, modeOverride = "", "", ""
	offline = false

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeRecordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employee.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing record: %v", err)
	}
	return path
}

func TestAdd_FromFileYAML(t *testing.T) {
	path := writeRecordFile(t, validRecord)
	out, stderr, err := execute(t, "add", "--from", path)
	if err != nil {
		t.Fatalf("add: %v\n%s", err, stderr)
	}
	for _, want := range []string{"firstName: Ada", "companyName: Acme", "salary: 5000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Secr3t") {
		t.Error("output leaks the password")
	}
}

func TestAdd_FromFileJSON(t *testing.T) {
	path := writeRecordFile(t, validRecord)
	out, _, err := execute(t, "add", "--from", path, "--format", "json")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, `"password": "********"`) {
		t.Errorf("password should be masked:\n%s", out)
	}
	if !strings.Contains(out, `"salary": 5000`) {
		t.Errorf("salary should be a number:\n%s", out)
	}
}

func TestAdd_FromFileRejected(t *testing.T) {
	record := strings.Replace(validRecord, "termsOfService: true", "termsOfService: false", 1)
	path := writeRecordFile(t, record)

	out, stderr, err := execute(t, "add", "--from", path)
	if err == nil || !strings.Contains(err.Error(), "employee rejected: 1 issue(s)") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "policyAgreement.termsOfService: You must accept the Terms of Service") {
		t.Errorf("stderr = %s", stderr)
	}
	if out != "" {
		t.Errorf("nothing should be printed for a rejected record, got %q", out)
	}
}

func TestAdd_FromFileTakenUserName(t *testing.T) {
	record := strings.Replace(validRecord, "userName: ada_l", "userName: admin", 1)
	path := writeRecordFile(t, record)

	_, stderr, err := execute(t, "add", "--from", path)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(stderr, "User Name already exists") {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestAdd_RequiresTerminal(t *testing.T) {
	old := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = old }()

	_, _, err := execute(t, "add")
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Fatalf("err = %v", err)
	}
}

func TestAdd_InvalidFormat(t *testing.T) {
	path := writeRecordFile(t, validRecord)
	if _, _, err := execute(t, "add", "--from", path, "--format", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestValidate(t *testing.T) {
	path := writeRecordFile(t, validRecord)
	out, _, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "Validation passed.") {
		t.Errorf("out = %q", out)
	}
}

func TestValidate_ReportsIssuesWithHints(t *testing.T) {
	record := strings.Replace(validRecord, "jobType: Full-time", "jobType: Full-tme", 1)
	path := writeRecordFile(t, record)

	_, stderr, err := execute(t, "validate", path)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, `did you mean "Full-time"?`) {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestValidate_Offline(t *testing.T) {
	record := strings.Replace(validRecord, "email: ada@example.com", "email: root@root.com", 1)
	path := writeRecordFile(t, record)

	if _, _, err := execute(t, "validate", path); err == nil {
		t.Fatal("taken email should fail online validation")
	}
	if _, _, err := execute(t, "validate", "--offline", path); err != nil {
		t.Fatalf("offline validation: %v", err)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := execute(t, "schema")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Employee onboarding record") {
		t.Errorf("out = %.80s", out)
	}
}

func TestTemplateCommand(t *testing.T) {
	out, _, err := execute(t, "template")
	if err != nil {
		t.Fatal(err)
	}
	v, err := employee.ParseYAML([]byte(out))
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if got, _ := v.Get(employee.PathJobType); got != employee.JobFullTime {
		t.Errorf("jobType = %v", got)
	}
}
