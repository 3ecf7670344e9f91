package binding

import (
	"fmt"
	"sort"

	"github.com/bridgr-io/bridgr/internal/ir"
	"github.com/bridgr-io/bridgr/internal/logging"
	"github.com/bridgr-io/bridgr/internal/template"
)

// Bound pairs a function's manifest name with its normalized binding.
type Bound struct {
	Function string
	Config   Config
}

// Bind walks every function's events and applies the mutation pipeline to
// each cloudwatchSns binding it finds. Functions are visited in name order
// so repeated runs produce the same template; a function's events keep their
// declaration order. Bindings are never deduplicated across functions.
func Bind(t *template.Template, m *ir.Manifest) error {
	for _, name := range functionNames(m) {
		fn := m.Functions[name]
		for _, ev := range fn.Events {
			raw, ok := recognized(ev)
			if !ok {
				continue
			}
			logging.Debug("applying cloudwatchSns binding",
				"function", name,
				"config", fmt.Sprintf("%v", raw))

			cfg, err := Normalize(raw, name, m.Service, m.Stage())
			if err != nil {
				return err
			}
			if err := Apply(t, cfg); err != nil {
				return fmt.Errorf("function %q: %w", name, err)
			}
		}
	}
	return nil
}

// Collect normalizes every recognized binding without touching a template.
// It backs the validate and preflight commands.
func Collect(m *ir.Manifest) ([]Bound, error) {
	var out []Bound
	for _, name := range functionNames(m) {
		for _, ev := range m.Functions[name].Events {
			raw, ok := recognized(ev)
			if !ok {
				continue
			}
			cfg, err := Normalize(raw, name, m.Service, m.Stage())
			if err != nil {
				return nil, err
			}
			out = append(out, Bound{Function: name, Config: cfg})
		}
	}
	return out, nil
}

func functionNames(m *ir.Manifest) []string {
	names := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func recognized(ev map[string]any) (map[string]any, bool) {
	raw, ok := ev[EventKind]
	if !ok {
		return nil, false
	}
	cfg, ok := raw.(map[string]any)
	return cfg, ok
}
