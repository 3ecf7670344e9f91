package cli

import (
	"fmt"

	"github.com/bridgr-io/bridgr/internal/binding"
	"github.com/bridgr-io/bridgr/internal/preflight"
	"github.com/spf13/cobra"
)

var (
	preflightManifest   string
	preflightRegion     string
	preflightProperties map[string]string
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Check bindings against the live AWS account",
	Long:  `Verifies that every binding's external collaborators (topic, external dead-letter queue, deployed rule, function) are in a deployable state. Read-only.`,
	RunE:  runPreflight,
}

func init() {
	preflightCmd.Flags().StringVarP(&preflightManifest, "manifest", "m", "manifest.pkl", "Service manifest (PKL)")
	preflightCmd.Flags().StringVar(&preflightRegion, "region", "", "AWS region (defaults to the manifest's provider region)")
	preflightCmd.Flags().StringToStringVarP(&preflightProperties, "prop", "D", nil, "Set external manifest properties (format: key=value)")
}

func runPreflight(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := loadManifest(ctx, preflightManifest, preflightProperties)
	if err != nil {
		return err
	}

	bounds, err := binding.Collect(m)
	if err != nil {
		return err
	}
	if len(bounds) == 0 {
		fmt.Println("No cloudwatchSns bindings found.")
		return nil
	}

	region := preflightRegion
	if region == "" {
		region = m.Region()
	}
	checker, err := preflight.New(ctx, region)
	if err != nil {
		return err
	}

	findings, err := checker.Check(ctx, m.Service, m.Stage(), bounds)
	if err != nil {
		return err
	}

	errs := 0
	for _, f := range findings {
		if f.Severity == preflight.SeverityError {
			errs++
		}
		fmt.Printf("  [%s] %s: %s\n", f.Severity, f.Function, f.Message)
	}

	if errs > 0 {
		return fmt.Errorf("preflight found %d blocking problem(s)", errs)
	}
	fmt.Printf("\nPreflight passed for %d binding(s).\n", len(bounds))
	return nil
}
