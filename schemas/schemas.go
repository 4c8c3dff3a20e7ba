// Package schemas embeds the JSON Schema documents used by onboard.
package schemas

import _ "embed"

// EmployeeV1 is the employee onboarding record schema (draft-07).
//
//go:embed employee.v1.json
var EmployeeV1 []byte
