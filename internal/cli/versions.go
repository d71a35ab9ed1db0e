package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rmi-forms/internal/registry"
)

// VersionsCommand creates the versions command
func VersionsCommand() *cobra.Command {
	var (
		templateType string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List supported template families and versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions(templateType, format)
		},
	}

	cmd.Flags().StringVar(&templateType, "template", "", "Limit to one family: cmrt, emrt, crt or amrt")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or yaml")

	return cmd
}

type versionListing struct {
	Template string                     `yaml:"template"`
	Default  string                     `yaml:"default"`
	Versions []registry.TemplateVersion `yaml:"versions"`
}

func runVersions(templateType, format string) error {
	types := registry.TemplateTypes()
	if templateType != "" {
		t := registry.TemplateType(templateType)
		if !registry.IsValidTemplateType(t) {
			return fmt.Errorf("unknown template %q (valid: cmrt, emrt, crt, amrt)", templateType)
		}
		types = []registry.TemplateType{t}
	}

	listings := make([]versionListing, 0, len(types))
	for _, t := range types {
		versions, err := registry.GetVersions(t)
		if err != nil {
			return err
		}
		def, err := registry.GetDefaultVersion(t)
		if err != nil {
			return err
		}
		listings = append(listings, versionListing{
			Template: string(t),
			Default:  def,
			Versions: versions,
		})
	}

	switch format {
	case "text":
		for _, l := range listings {
			fmt.Printf("%s (default %s):\n", l.Template, l.Default)
			for _, v := range l.Versions {
				fmt.Printf("  %s  %s\n", v.ID, v.Label)
			}
		}
		return nil
	case "yaml":
		out, err := yaml.Marshal(listings)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	default:
		return fmt.Errorf("unknown format %q (valid: text, yaml)", format)
	}
}

// RunVersions is the CLI wrapper function for the versions command
func RunVersions(ctx context.Context, args []string) error {
	cmd := VersionsCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
