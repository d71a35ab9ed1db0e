package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rmi-forms/internal/config"
	"rmi-forms/internal/legacy"
	"rmi-forms/internal/schema"
	"rmi-forms/internal/transform"
)

// ConvertCommand creates the convert command
func ConvertCommand() *cobra.Command {
	var (
		from   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert <input.json>",
		Short: "Convert between legacy reports and snapshots",
		Long: `Convert a declaration between the legacy report format and the
snapshot format.

With --from legacy, the input is a legacy report; its template family
and version are detected from the document and a snapshot is produced.
With --from snapshot, the input is a snapshot and a legacy report is
produced.

Examples:
  ./rmi-forms convert --from legacy report.json -o snapshot.json
  ./rmi-forms convert --from snapshot snapshot.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(from, args[0], output)
		},
	}

	cmd.Flags().StringVar(&from, "from", "legacy", "Input format: legacy or snapshot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to a name derived from the input)")

	return cmd
}

func runConvert(from, input, output string) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	switch from {
	case "legacy":
		return convertLegacy(raw, output)
	case "snapshot":
		return convertSnapshot(raw, output)
	default:
		return fmt.Errorf("unknown input format %q (valid: legacy, snapshot)", from)
	}
}

func convertLegacy(raw []byte, output string) error {
	doc, err := legacy.DecodeReport(raw)
	if err != nil {
		return err
	}
	snap, _, err := legacy.ToInternal(doc)
	if err != nil {
		return err
	}

	out, err := stringify(snap)
	if err != nil {
		return err
	}
	if output == "" {
		output = resolveOutputPath(fmt.Sprintf("%s-%s-snapshot.json", snap.TemplateType, snap.VersionID))
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Imported %s %s report: %s\n", strings.ToUpper(string(snap.TemplateType)), snap.VersionID, output)
	if d := snap.Data.CompanyInfo["authorizationDate"]; d != "" {
		fmt.Printf("  Authorized: %s\n", transform.ToDisplayDate(d))
	}
	fmt.Printf("  Company: %s\n", snap.Data.CompanyInfo["companyName"])
	return nil
}

func convertSnapshot(raw []byte, output string) error {
	snap, err := schema.ParseSnapshot(raw)
	if err != nil {
		return err
	}
	doc, err := legacy.ToExternalLoose(snap)
	if err != nil {
		return err
	}

	out, err := legacy.EncodeReport(doc, config.IsPrettyOutput())
	if err != nil {
		return err
	}
	if output == "" {
		output = resolveOutputPath(fmt.Sprintf("RMI_%s_%s.json",
			strings.ToUpper(string(snap.TemplateType)), snap.VersionID))
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Exported %s %s report: %s\n", strings.ToUpper(string(snap.TemplateType)), snap.VersionID, output)
	return nil
}

// RunConvert is the CLI wrapper function for the convert command
func RunConvert(ctx context.Context, args []string) error {
	cmd := ConvertCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
