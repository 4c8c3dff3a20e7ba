package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devshahoriar/custom-form/employee"
)

var offline bool

var validateCmd = &cobra.Command{
	Use:   "validate <file.yaml>",
	Short: "Validate an employee record",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&offline, "offline", false, "skip the username and email uniqueness checks")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	values, err := employee.ParseYAML(data)
	if err != nil {
		return err
	}

	dir := employee.Directory(directoryFrom(cfg))
	if offline {
		dir = nil
	}
	sch, err := employee.NewSchema(dir)
	if err != nil {
		return err
	}

	res := sch.Validate(cmd.Context(), values)
	printIssues(cmd.ErrOrStderr(), res.Issues)
	if !res.Valid() {
		return fmt.Errorf("validation failed: %d error(s)", len(res.Issues))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Validation passed.")
	return nil
}
