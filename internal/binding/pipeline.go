package binding

import (
	"fmt"

	"github.com/bridgr-io/bridgr/internal/template"
)

// A stage is one named template mutation. Stage names surface in wrapped
// errors so a failed build points at the mutation that rejected it.
type stage struct {
	name string
	run  func(*template.Template, Config) error
}

// stages run in a fixed order: the policy builders may reference the queue
// the DLQ stage just created. The later stages are independent of each
// other, but the order is kept deterministic for reproducible templates.
var stages = []stage{
	{"dead-letter-queue", ensureDeadLetterQueue},
	{"topic-policy", ensureTopicPolicy},
	{"queue-policy", ensureQueuePolicy},
	{"rule-target", injectRuleTarget},
	{"subscription", createSubscription},
	{"invoke-permission", grantInvokePermission},
}

// Apply runs the full mutation pipeline for one normalized binding against
// the shared template. There is no rollback: on failure the template is left
// partially mutated and the error aborts the whole build.
func Apply(t *template.Template, cfg Config) error {
	for _, s := range stages {
		if err := s.run(t, cfg); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
