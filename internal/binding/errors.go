package binding

import "fmt"

// Usage documents the full binding configuration. It is embedded in the
// missing-field error so a broken build tells the user how to fix it.
const Usage = `A cloudwatchSns event routes CloudWatch Events through an SNS topic to the
function, with an SQS dead-letter queue backing the subscription.

Configuration:

  events {
    new {
      ["cloudwatchSns"] {
        // Required. Logical name of an existing AWS::Events::Rule in the
        // template. One target is appended to it (at most 5 per rule).
        ["ruleResourceName"] = "MyRule"

        // Required. ARN of the SNS topic the rule publishes to.
        ["topicArn"] = "arn:aws:sns:us-east-1:123456789012:my-topic"

        // Optional. ARN and/or URL of an external dead-letter queue. When
        // neither is set, a shared queue named SNSDeadLetterQueue is
        // provisioned and reused by every binding.
        ["dlqArn"] = "arn:aws:sqs:us-east-1:123456789012:my-dlq"
        ["dlqUrl"] = "https://sqs.us-east-1.amazonaws.com/123456789012/my-dlq"

        // Optional. Logical names for the provisioned queue and the two
        // shared policy resources.
        ["dlqResourceName"] = "SNSDeadLetterQueue"
        ["dlqPolicyResourceName"] = "SNStoDLQInsertPolicy"
        ["topicPolicyResourceName"] = "CWEtoSNSInsertPolicy"

        // Optional. Physical-name prefix for the provisioned queue.
        // Defaults to "{service}-{stage}-".
        ["prefix"] = "svc-dev-"

        // Optional. Extra rule-target fields (InputPath, InputTransformer,
        // ...) merged verbatim into the appended target.
        ["ruleMessage"] { ... }

        // Optional. SNS subscription filter policy, passed through verbatim.
        ["filterPolicy"] { ... }
      }
    }
  }`

// MissingFieldError reports a binding configuration without one of its
// required fields. Normalization fails before any template mutation.
type MissingFieldError struct {
	Function string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("function %q: cloudwatchSns binding is missing required field %q\n\n%s",
		e.Function, e.Field, Usage)
}

// UnknownFieldError reports a binding configuration field outside the
// declared schema.
type UnknownFieldError struct {
	Function string
	Field    string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("function %q: cloudwatchSns binding has undeclared field %q\n\n%s",
		e.Function, e.Field, Usage)
}

// InvalidRuleError reports a rule resource that is missing or structurally
// unable to accept a target. Found carries whatever was at the failing
// position for diagnosis.
type InvalidRuleError struct {
	Rule  string
	Found any
}

func (e *InvalidRuleError) Error() string {
	if e.Found == nil {
		return fmt.Sprintf("rule resource %q does not exist in the template", e.Rule)
	}
	return fmt.Sprintf("rule resource %q has no usable Properties.Targets list, found: %#v", e.Rule, e.Found)
}

// TargetLimitError reports a rule already at the CloudWatch Events ceiling of
// five targets.
type TargetLimitError struct {
	Rule string
}

func (e *TargetLimitError) Error() string {
	return fmt.Sprintf("rule resource %q already has %d targets, the CloudWatch Events maximum", e.Rule, maxRuleTargets)
}
