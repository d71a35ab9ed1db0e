package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rmi-forms/internal/config"
	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
	"rmi-forms/internal/schema"
)

// NewCommand creates the new command
func NewCommand() *cobra.Command {
	var (
		templateType string
		versionID    string
		locale       string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty declaration snapshot",
		Long: `Create an empty declaration snapshot for a template family.

The snapshot is pre-seeded with the template's default mineral scope,
per-mineral answer maps and empty tables, ready to be filled in and
checked.

Examples:
  # Latest CMRT
  ./rmi-forms new --template cmrt

  # A specific EMRT version, written to a file
  ./rmi-forms new --template emrt --version 2.0 -o emrt.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(templateType, versionID, locale, output)
		},
	}

	cmd.Flags().StringVar(&templateType, "template", "", "Template family: cmrt, emrt, crt or amrt (required)")
	cmd.Flags().StringVar(&versionID, "version", "", "Template version (defaults to the family's latest)")
	cmd.Flags().StringVar(&locale, "locale", "", "Snapshot locale: en-US or zh-CN")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to stdout)")

	return cmd
}

func runNew(templateType, versionID, locale, output string) error {
	t := registry.TemplateType(templateType)
	if !registry.IsValidTemplateType(t) {
		return fmt.Errorf("unknown template %q (valid: cmrt, emrt, crt, amrt)", templateType)
	}
	if versionID == "" {
		latest, err := registry.GetDefaultVersion(t)
		if err != nil {
			return err
		}
		versionID = latest
	}
	def, err := registry.GetVersionDef(t, versionID)
	if err != nil {
		return err
	}
	if locale == "" {
		locale = config.GetDefaultLocale()
	}

	snap := schema.NewSnapshot(t, versionID, formdata.CreateEmptyFormData(def))
	snap.Locale = locale

	raw, err := stringify(snap)
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(output, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Printf("Created %s %s snapshot: %s\n", t, versionID, output)
	return nil
}

func stringify(snap *schema.Snapshot) ([]byte, error) {
	if config.IsPrettyOutput() {
		return schema.StringifySnapshotIndent(snap)
	}
	return schema.StringifySnapshot(snap)
}

func resolveOutputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(config.GetOutputDir(), name)
}

// RunNew is the CLI wrapper function for the new command
func RunNew(ctx context.Context, args []string) error {
	cmd := NewCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
