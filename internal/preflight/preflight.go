// Package preflight checks a manifest's event bindings against the live AWS
// account before a deploy: the topic ARNs must resolve, external dead-letter
// queues must be reachable, and already-deployed rules must have room for
// another target. It reads only; nothing is mutated.
package preflight

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/bridgr-io/bridgr/internal/binding"
	"github.com/bridgr-io/bridgr/internal/logging"
)

// Severity of a finding.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is one problem (or caveat) discovered for a binding.
type Finding struct {
	Function string
	Severity string
	Message  string
}

// Narrow client interfaces so checks are testable without the real SDK.
type snsAPI interface {
	GetTopicAttributes(ctx context.Context, params *sns.GetTopicAttributesInput, optFns ...func(*sns.Options)) (*sns.GetTopicAttributesOutput, error)
}

type sqsAPI interface {
	GetQueueAttributes(ctx context.Context, params *sqs.GetQueueAttributesInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error)
}

type lambdaAPI interface {
	GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
}

type eventsAPI interface {
	ListTargetsByRule(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Checker runs the per-binding account checks.
type Checker struct {
	sns    snsAPI
	sqs    sqsAPI
	lambda lambdaAPI
	events eventsAPI
	sts    stsAPI
}

// New builds a Checker from the default AWS credential chain.
func New(ctx context.Context, region string) (*Checker, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &Checker{
		sns:    sns.NewFromConfig(cfg),
		sqs:    sqs.NewFromConfig(cfg),
		lambda: lambda.NewFromConfig(cfg),
		events: eventbridge.NewFromConfig(cfg),
		sts:    sts.NewFromConfig(cfg),
	}, nil
}

// Check verifies each binding's external collaborators. A non-nil error
// means a check could not be carried out at all; problems with the bindings
// themselves come back as findings.
func (c *Checker) Check(ctx context.Context, service, stage string, bounds []binding.Bound) ([]Finding, error) {
	ident, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("unable to resolve caller identity: %w", err)
	}
	logging.Info("running preflight checks", "account", aws.ToString(ident.Account), "service", service, "stage", stage)

	var findings []Finding
	for _, b := range bounds {
		findings = append(findings, c.checkTopic(ctx, b)...)
		findings = append(findings, c.checkQueue(ctx, b)...)
		findings = append(findings, c.checkRule(ctx, b)...)
		findings = append(findings, c.checkFunction(ctx, service, stage, b)...)
	}
	return findings, nil
}

func (c *Checker) checkTopic(ctx context.Context, b binding.Bound) []Finding {
	_, err := c.sns.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{
		TopicArn: aws.String(b.Config.TopicArn),
	})
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return []Finding{{
			Function: b.Function,
			Severity: SeverityError,
			Message:  fmt.Sprintf("topic %s does not exist", b.Config.TopicArn),
		}}
	}
	return []Finding{{
		Function: b.Function,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("could not check topic %s: %v", b.Config.TopicArn, err),
	}}
}

// checkQueue only covers an external DLQ addressed by URL; an ARN-only DLQ
// cannot be looked up through the SQS API, and the default queue does not
// exist until the template is provisioned.
func (c *Checker) checkQueue(ctx context.Context, b binding.Bound) []Finding {
	if b.Config.DLQURL == "" {
		return nil
	}
	_, err := c.sqs.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl: aws.String(b.Config.DLQURL),
	})
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return []Finding{{
			Function: b.Function,
			Severity: SeverityError,
			Message:  fmt.Sprintf("dead-letter queue %s does not exist", b.Config.DLQURL),
		}}
	}
	return []Finding{{
		Function: b.Function,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("could not check dead-letter queue %s: %v", b.Config.DLQURL, err),
	}}
}

// checkRule is best-effort: rules deployed through CloudFormation usually
// carry a generated physical name, so a miss on the logical name only
// downgrades to a warning.
func (c *Checker) checkRule(ctx context.Context, b binding.Bound) []Finding {
	out, err := c.events.ListTargetsByRule(ctx, &eventbridge.ListTargetsByRuleInput{
		Rule: aws.String(b.Config.RuleResourceName),
	})
	if err != nil {
		if isNotFound(err) {
			return []Finding{{
				Function: b.Function,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("rule %s not found in the live account, skipping target-count check", b.Config.RuleResourceName),
			}}
		}
		return []Finding{{
			Function: b.Function,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("could not list targets of rule %s: %v", b.Config.RuleResourceName, err),
		}}
	}
	if len(out.Targets) >= 5 {
		return []Finding{{
			Function: b.Function,
			Severity: SeverityError,
			Message:  fmt.Sprintf("rule %s already has %d targets, the CloudWatch Events maximum", b.Config.RuleResourceName, len(out.Targets)),
		}}
	}
	return nil
}

func (c *Checker) checkFunction(ctx context.Context, service, stage string, b binding.Bound) []Finding {
	name := fmt.Sprintf("%s-%s-%s", service, stage, b.Function)
	_, err := c.lambda.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	})
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		// Expected on the first deploy of the function.
		return []Finding{{
			Function: b.Function,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("function %s is not deployed yet", name),
		}}
	}
	return []Finding{{
		Function: b.Function,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("could not check function %s: %v", name, err),
	}}
}

func isNotFound(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "NotFound", "NotFoundException", "ResourceNotFoundException",
			"AWS.SimpleQueueService.NonExistentQueue", "QueueDoesNotExist":
			return true
		}
	}
	return false
}
