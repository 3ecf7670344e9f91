package cli

import (
	"fmt"

	"github.com/bridgr-io/bridgr/internal/binding"
	"github.com/spf13/cobra"
)

var (
	validateManifest   string
	validateProperties map[string]string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the manifest's event bindings",
	Long:  `Evaluates the service manifest and normalizes every cloudwatchSns binding without writing anything.`,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateManifest, "manifest", "m", "manifest.pkl", "Service manifest (PKL)")
	validateCmd.Flags().StringToStringVarP(&validateProperties, "prop", "D", nil, "Set external manifest properties (format: key=value)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(cmd.Context(), validateManifest, validateProperties)
	if err != nil {
		return err
	}

	bounds, err := binding.Collect(m)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	for _, b := range bounds {
		fmt.Printf("  %s: rule %s -> topic %s... OK\n",
			b.Function, b.Config.RuleResourceName, b.Config.TopicArn)
	}
	fmt.Printf("\n%d binding(s) valid.\n", len(bounds))
	return nil
}
