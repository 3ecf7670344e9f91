package binding

import "github.com/bridgr-io/bridgr/internal/template"

// maxRuleTargets is the CloudWatch Events ceiling on targets per rule.
const maxRuleTargets = 5

// injectRuleTarget appends this binding's topic as a target of the
// pre-existing event rule. The rule itself is never created here; it must
// already be in the template with a Targets list.
func injectRuleTarget(t *template.Template, cfg Config) error {
	res := t.Get(cfg.RuleResourceName)
	if res == nil {
		return &InvalidRuleError{Rule: cfg.RuleResourceName}
	}

	props, ok := res.Properties.(map[string]any)
	if !ok {
		return &InvalidRuleError{Rule: cfg.RuleResourceName, Found: res.Properties}
	}

	targets, ok := props["Targets"].([]any)
	if !ok {
		return &InvalidRuleError{Rule: cfg.RuleResourceName, Found: props}
	}

	if len(targets) >= maxRuleTargets {
		return &TargetLimitError{Rule: cfg.RuleResourceName}
	}

	// The Id is derived from the topic resource name, which is derived from
	// the function name, keeping target Ids unique per topic within a rule.
	target := map[string]any{
		"Arn": cfg.TopicArn,
		"Id":  "ID" + cfg.TopicResourceName,
	}
	// Opaque passthrough for InputPath / InputTransformer and friends.
	for k, v := range cfg.RuleMessage {
		target[k] = v
	}

	props["Targets"] = append(targets, target)
	return nil
}
