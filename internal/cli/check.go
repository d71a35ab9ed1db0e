package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
	"rmi-forms/internal/rules"
	"rmi-forms/internal/schema"
)

// CheckCommand creates the check command
func CheckCommand() *cobra.Command {
	var (
		summaryOnly bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "check <snapshot.json>",
		Short: "Run completeness checks against a snapshot",
		Long: `Run the declaration completeness checker against a snapshot.

Reports every missing required field, answer and table entry together
with a section-by-section completion summary. The exit code is non-zero
when required items are missing.

Examples:
  ./rmi-forms check cmrt.json
  ./rmi-forms check cmrt.json --summary
  ./rmi-forms check cmrt.json --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], summaryOnly, format)
		},
	}

	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print only the completion summary")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")

	return cmd
}

func runCheck(path string, summaryOnly bool, format string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	snap, err := schema.ParseSnapshot(raw)
	if err != nil {
		return err
	}
	def, err := registry.GetVersionDef(snap.TemplateType, snap.VersionID)
	if err != nil {
		return err
	}

	state := stateOf(snap.Data)
	result := rules.BuildCheckerSummary(def, state, snap.Data, rules.IdentityTranslate)

	var payload any = result
	if summaryOnly {
		payload = result.Summary
	}
	out, err := render(payload, format)
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d required items missing (%d%% complete)",
			len(result.Errors), result.Summary.Completion)
	}
	return nil
}

// stateOf derives the rule-engine view of a form from its data.
func stateOf(data formdata.FormData) rules.FormState {
	return rules.FormState{
		ScopeType:        data.CompanyInfo["declarationScope"],
		QuestionAnswers:  data.Questions,
		SelectedMinerals: data.SelectedMinerals,
		CustomMinerals:   data.CustomMinerals,
	}
}

func render(v any, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(v, "", "  ")
	case "yaml":
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown format %q (valid: json, yaml)", format)
	}
}

// RunCheck is the CLI wrapper function for the check command
func RunCheck(ctx context.Context, args []string) error {
	cmd := CheckCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
