package eval

import (
	"context"
	"fmt"
	"net/url"

	"github.com/apple/pkl-go/pkl"
	"github.com/bridgr-io/bridgr/internal/ir"
)

// Evaluator handles PKL evaluation of service manifests into IR types.
type Evaluator struct {
	projectDir string
}

func NewEvaluator(projectDir string) *Evaluator {
	return &Evaluator{
		projectDir: projectDir,
	}
}

// LoadManifest evaluates the service manifest and returns the IR. External
// properties override manifest-level values (e.g. the stage).
func (e *Evaluator) LoadManifest(ctx context.Context, entryPoint string, properties map[string]string) (*ir.Manifest, error) {
	u, err := url.Parse("file://" + e.projectDir + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse project directory URL: %w", err)
	}

	opts := []func(*pkl.EvaluatorOptions){pkl.PreconfiguredOptions}
	if len(properties) > 0 {
		opts = append(opts, func(o *pkl.EvaluatorOptions) {
			if o.Properties == nil {
				o.Properties = make(map[string]string)
			}
			for k, v := range properties {
				o.Properties[k] = v
			}
		})
	}

	evaluator, err := pkl.NewProjectEvaluator(ctx, u, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create PKL evaluator: %w", err)
	}
	defer evaluator.Close()

	var m ir.Manifest
	if err := evaluator.EvaluateModule(ctx, pkl.FileSource(entryPoint), &m); err != nil {
		return nil, fmt.Errorf("failed to evaluate manifest: %w", err)
	}

	return &m, nil
}
