package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bridgr-io/bridgr/internal/binding"
	"github.com/bridgr-io/bridgr/internal/eval"
	"github.com/bridgr-io/bridgr/internal/ir"
	"github.com/bridgr-io/bridgr/internal/template"
	"github.com/spf13/cobra"
)

var (
	generateManifest   string
	generateTemplate   string
	generateOutput     string
	generateProperties map[string]string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Augment a template with event-delivery wiring",
	Long:  `Loads the service manifest and base template, applies the mutation pipeline for every cloudwatchSns binding, and writes the augmented template.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateManifest, "manifest", "m", "manifest.pkl", "Service manifest (PKL)")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "template.json", "Base CloudFormation template (JSON or YAML)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "template.out.json", "Output template path")
	generateCmd.Flags().StringToStringVarP(&generateProperties, "prop", "D", nil, "Set external manifest properties (format: key=value)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := loadManifest(ctx, generateManifest, generateProperties)
	if err != nil {
		return err
	}

	fmt.Printf("Loading template %s... ", generateTemplate)
	tmpl, err := template.Load(generateTemplate)
	if err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("OK")

	before := len(tmpl.Resources)
	if err := binding.Bind(tmpl, m); err != nil {
		return fmt.Errorf("binding failed: %w", err)
	}

	if err := tmpl.Write(generateOutput); err != nil {
		return err
	}

	fmt.Printf("\nWrote %s: %d resources (%d added).\n",
		generateOutput, len(tmpl.Resources), len(tmpl.Resources)-before)
	return nil
}

// loadManifest evaluates a PKL manifest relative to its own directory.
func loadManifest(ctx context.Context, path string, properties map[string]string) (*ir.Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fmt.Printf("Loading manifest %s... ", path)
	evaluator := eval.NewEvaluator(filepath.Dir(abs))
	m, err := evaluator.LoadManifest(ctx, abs, properties)
	if err != nil {
		fmt.Println("FAILED")
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	fmt.Println("OK")
	return m, nil
}
