package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/devshahoriar/custom-form/employee"
	"github.com/devshahoriar/custom-form/schemas"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the employee JSON Schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(schemas.EmployeeV1)
		return err
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print an empty employee record to fill in for add --from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any(employee.Defaults())); err != nil {
			return fmt.Errorf("encoding template: %w", err)
		}
		return enc.Close()
	},
}
