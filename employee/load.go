package employee

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/devshahoriar/custom-form/form"
	"github.com/devshahoriar/custom-form/upload"
)

var datePaths = []string{
	"personalInformation.dateOfBirth",
	"employmentDetails.joiningDate",
}

// ParseYAML decodes a record file into a value tree shaped like the one the
// wizard builds: dates become time.Time and file lists become descriptors.
// Missing sections are left missing so validation reports them.
func ParseYAML(data []byte) (form.Values, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return Normalize(form.Values(raw)), nil
}

// Normalize rewrites date strings to time.Time and profile images to
// descriptors in place. Unparseable dates are left as they are so
// validation reports them.
func Normalize(v form.Values) form.Values {
	for _, p := range datePaths {
		normalizeDate(v, p)
	}
	rows, _ := v.Array(PathExperience)
	for i := range rows {
		base := form.IndexPath(PathExperience, i)
		normalizeDate(v, form.JoinPath(base, "startDate"))
		normalizeDate(v, form.JoinPath(base, "endDate"))
	}
	if raw, ok := v.Get("personalInformation.profileImage"); ok && raw != nil {
		_ = v.Set("personalInformation.profileImage", upload.AsFiles(raw))
	}
	return v
}

func normalizeDate(v form.Values, path string) {
	raw, ok := v.Get(path)
	if !ok {
		return
	}
	if t, ok := AsTime(raw); ok {
		_ = v.Set(path, t)
	}
}
