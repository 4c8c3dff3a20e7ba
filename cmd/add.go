package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/devshahoriar/custom-form/config"
	"github.com/devshahoriar/custom-form/employee"
	"github.com/devshahoriar/custom-form/form"
	"github.com/devshahoriar/custom-form/internal/tui"
	"github.com/devshahoriar/custom-form/internal/tui/steps"
	"github.com/devshahoriar/custom-form/logging"
	"github.com/devshahoriar/custom-form/schema"
	"github.com/devshahoriar/custom-form/upload"
)

var (
	fromFile     string
	outputFormat string
	modeOverride string
)

// isTerminal is replaced in tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new employee",
	Long:  "Add a new employee through the interactive wizard, or submit a record from a YAML file with --from.",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&fromFile, "from", "", "submit the employee record in this YAML file without the wizard")
	addCmd.Flags().StringVar(&outputFormat, "format", "", "output format of the added record: yaml or json")
	addCmd.Flags().StringVar(&modeOverride, "mode", "", "validation mode: onChange or onSubmit")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	if modeOverride != "" {
		cfg.Mode = modeOverride
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, err := form.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	sch, err := employee.NewSchema(directoryFrom(cfg))
	if err != nil {
		return err
	}

	if fromFile != "" {
		logger := logging.NewJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
		return addFromFile(cmd, cfg, sch, logger)
	}

	if !isTerminal() {
		return errors.New("the wizard needs an interactive terminal; use --from to add from a file")
	}
	logger, err := logging.OpenFile(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Close()
	return addInteractive(cmd, cfg, sch, mode, logger)
}

func addInteractive(cmd *cobra.Command, cfg config.Config, sch *schema.Schema, mode form.Mode, logger logging.Logger) error {
	var added employee.Employee
	handler := func(_ context.Context, e employee.Employee) error {
		added = e
		return nil
	}
	f := form.New(sch, employee.Defaults(), handler, form.WithMode(mode), form.WithLogger(logger))

	theme := tui.DetectTheme(cfg.Theme)
	wizardSteps := steps.All(steps.Deps{
		Form:     f,
		Styles:   tui.NewStyleSet(theme),
		Uploader: upload.NewMemoryStore(cfg.Upload.MaxBytes),
		MaxFiles: cfg.Upload.MaxFiles,
	})
	model, err := tui.NewWizardModel(theme, wizardSteps, f,
		tui.WithInitialStep(cfg.InitialStep),
		tui.WithVersion(appVersion),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("wizard started", map[string]any{"mode": mode.String(), "initial_step": cfg.InitialStep})
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	w, ok := final.(tui.WizardModel)
	if !ok || !w.Done() {
		if w.Err() != nil {
			return w.Err()
		}
		return nil
	}
	return writeRecord(cmd.OutOrStdout(), added, cfg.OutputFormat)
}

func addFromFile(cmd *cobra.Command, cfg config.Config, sch *schema.Schema, logger logging.Logger) error {
	data, err := os.ReadFile(fromFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fromFile, err)
	}
	values, err := employee.ParseYAML(data)
	if err != nil {
		return err
	}

	var added employee.Employee
	handler := func(_ context.Context, e employee.Employee) error {
		added = e
		return nil
	}
	f := form.New(sch, employee.Defaults(), handler, form.WithMode(form.ModeOnSubmit), form.WithLogger(logger))
	f.Reset(values)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if err := f.Submit(ctx); err != nil {
		var issues schema.Issues
		if errors.As(err, &issues) {
			printIssues(cmd.ErrOrStderr(), issues)
			return fmt.Errorf("employee rejected: %d issue(s)", len(issues))
		}
		return err
	}
	return writeRecord(cmd.OutOrStdout(), added, cfg.OutputFormat)
}

func printIssues(w io.Writer, issues schema.Issues) {
	for _, is := range issues {
		fmt.Fprintf(w, "ERROR: %s\n", is)
	}
}

// writeRecord prints the added employee with the password masked.
func writeRecord(w io.Writer, e employee.Employee, format string) error {
	e = e.Redacted()
	switch format {
	case "json":
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding employee: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encoding employee: %w", err)
		}
		return enc.Close()
	}
}
