package binding

import (
	"testing"

	"github.com/bridgr-io/bridgr/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopicArn = "arn:aws:sns:us-east-1:123456789012:t"

// ruleTemplate returns a template holding one event rule with the given
// pre-existing targets, mirroring what a host build hands to the binder.
func ruleTemplate(name string, targets ...any) *template.Template {
	t := template.New()
	if targets == nil {
		targets = []any{}
	}
	t.Put(name, &template.Resource{
		Type:       "AWS::Events::Rule",
		Properties: map[string]any{"Targets": targets},
	})
	return t
}

func mustNormalize(t *testing.T, raw map[string]any, funcName string) Config {
	t.Helper()
	cfg, err := Normalize(raw, funcName, "svc", "dev")
	require.NoError(t, err)
	return cfg
}

func TestApply_EndToEnd(t *testing.T) {
	tmpl := ruleTemplate("MyRule")
	cfg := mustNormalize(t, map[string]any{
		"ruleResourceName": "MyRule",
		"topicArn":         testTopicArn,
	}, "processEvent")

	require.NoError(t, Apply(tmpl, cfg))

	// Dead-letter queue.
	dlq := tmpl.Get("SNSDeadLetterQueue")
	require.NotNil(t, dlq)
	assert.Equal(t, "AWS::SQS::Queue", dlq.Type)
	queueProps := dlq.Properties.(*QueueProperties)
	assert.Equal(t, "svc-dev-SNSDeadLetterQueue", queueProps.QueueName)
	assert.Equal(t, 1209600, queueProps.MessageRetentionPeriod)

	// Events -> SNS topic policy.
	topicPolicy := tmpl.Get("CWEtoSNSInsertPolicy")
	require.NotNil(t, topicPolicy)
	assert.Equal(t, "AWS::SNS::TopicPolicy", topicPolicy.Type)
	tpProps := topicPolicy.Properties.(*TopicPolicyProperties)
	assert.Equal(t, []any{testTopicArn}, tpProps.Topics)
	require.Len(t, tpProps.PolicyDocument.Statement, 1)
	stmt := tpProps.PolicyDocument.Statement[0]
	assert.Equal(t, "Statement1", stmt.Sid)
	assert.Equal(t, "Allow", stmt.Effect)
	assert.Equal(t, "events.amazonaws.com", stmt.Principal.Service)
	assert.Equal(t, "sns:Publish", stmt.Action)
	assert.Equal(t, testTopicArn, stmt.Resource)

	// SNS -> DLQ queue policy.
	queuePolicy := tmpl.Get("SNStoDLQInsertPolicy")
	require.NotNil(t, queuePolicy)
	assert.Equal(t, "AWS::SQS::QueuePolicy", queuePolicy.Type)
	qpProps := queuePolicy.Properties.(*QueuePolicyProperties)
	require.Len(t, qpProps.PolicyDocument.Statement, 1)
	qStmt := qpProps.PolicyDocument.Statement[0]
	assert.Equal(t, "sns.amazonaws.com", qStmt.Principal.Service)
	assert.Equal(t, "sqs:SendMessage", qStmt.Action)
	assert.Equal(t, map[string]any{
		"ArnEquals": map[string]any{"aws:SourceArn": testTopicArn},
	}, qStmt.Condition)

	// Rule target.
	ruleProps := tmpl.Get("MyRule").Properties.(map[string]any)
	targets := ruleProps["Targets"].([]any)
	require.Len(t, targets, 1)
	target := targets[0].(map[string]any)
	assert.Equal(t, testTopicArn, target["Arn"])
	assert.Equal(t, "IDProcessEventTopic", target["Id"])

	// Subscription.
	sub := tmpl.Get("SubscribeToProcessEventTopic")
	require.NotNil(t, sub)
	assert.Equal(t, "AWS::SNS::Subscription", sub.Type)
	subProps := sub.Properties.(*SubscriptionProperties)
	assert.Equal(t, testTopicArn, subProps.TopicArn)
	assert.Equal(t, "lambda", subProps.Protocol)
	assert.Equal(t, template.GetAtt("ProcessEventLambdaFunction", "Arn"), subProps.Endpoint)

	// Invocation permission.
	perm := tmpl.Get("ProcessEventInvokeFromProcessEventTopic")
	require.NotNil(t, perm)
	assert.Equal(t, "AWS::Lambda::Permission", perm.Type)
	permProps := perm.Properties.(*PermissionProperties)
	assert.Equal(t, "lambda:InvokeFunction", permProps.Action)
	assert.Equal(t, "sns.amazonaws.com", permProps.Principal)
	assert.Equal(t, testTopicArn, permProps.SourceArn)
	assert.Equal(t, template.GetAtt("ProcessEventLambdaFunction", "Arn"), permProps.FunctionName)
}

func TestApply_SharedResourcesAccumulate(t *testing.T) {
	tmpl := ruleTemplate("MyRule")

	first := mustNormalize(t, map[string]any{
		"ruleResourceName": "MyRule",
		"topicArn":         "arn:aws:sns:us-east-1:123456789012:first",
	}, "firstEvent")
	second := mustNormalize(t, map[string]any{
		"ruleResourceName": "MyRule",
		"topicArn":         "arn:aws:sns:us-east-1:123456789012:second",
	}, "secondEvent")

	require.NoError(t, Apply(tmpl, first))
	dlqBefore := tmpl.Get("SNSDeadLetterQueue")
	require.NoError(t, Apply(tmpl, second))

	// The shared DLQ is created exactly once.
	assert.Same(t, dlqBefore, tmpl.Get("SNSDeadLetterQueue"))

	// Each invocation appended one topic entry and one statement; the Nth
	// appended statement carries Sid StatementN regardless of which
	// function triggered it.
	tpProps := tmpl.Get("CWEtoSNSInsertPolicy").Properties.(*TopicPolicyProperties)
	require.Len(t, tpProps.Topics, 2)
	require.Len(t, tpProps.PolicyDocument.Statement, 2)
	assert.Equal(t, "Statement1", tpProps.PolicyDocument.Statement[0].Sid)
	assert.Equal(t, "Statement2", tpProps.PolicyDocument.Statement[1].Sid)

	qpProps := tmpl.Get("SNStoDLQInsertPolicy").Properties.(*QueuePolicyProperties)
	require.Len(t, qpProps.Queues, 2)
	require.Len(t, qpProps.PolicyDocument.Statement, 2)
	assert.Equal(t, "Statement2", qpProps.PolicyDocument.Statement[1].Sid)

	// Both topics are routed by the rule.
	targets := tmpl.Get("MyRule").Properties.(map[string]any)["Targets"].([]any)
	assert.Len(t, targets, 2)

	// Per-function resources stay distinct.
	assert.NotNil(t, tmpl.Get("SubscribeToFirstEventTopic"))
	assert.NotNil(t, tmpl.Get("SubscribeToSecondEventTopic"))
	assert.NotNil(t, tmpl.Get("FirstEventInvokeFromFirstEventTopic"))
	assert.NotNil(t, tmpl.Get("SecondEventInvokeFromSecondEventTopic"))
}

func TestApply_LiteralDLQReferences(t *testing.T) {
	tmpl := ruleTemplate("MyRule")
	cfg := mustNormalize(t, map[string]any{
		"ruleResourceName": "MyRule",
		"topicArn":         testTopicArn,
		"dlqArn":           "arn:aws:sqs:us-east-1:123456789012:external",
		"dlqUrl":           "https://sqs.us-east-1.amazonaws.com/123456789012/external",
	}, "processEvent")

	require.NoError(t, Apply(tmpl, cfg))

	// No queue is provisioned when the caller brings one.
	assert.Nil(t, tmpl.Get("SNSDeadLetterQueue"))

	qpProps := tmpl.Get("SNStoDLQInsertPolicy").Properties.(*QueuePolicyProperties)
	assert.Equal(t, []any{"https://sqs.us-east-1.amazonaws.com/123456789012/external"}, qpProps.Queues)
	assert.Equal(t, "arn:aws:sqs:us-east-1:123456789012:external", qpProps.PolicyDocument.Statement[0].Resource)

	subProps := tmpl.Get("SubscribeToProcessEventTopic").Properties.(*SubscriptionProperties)
	assert.Equal(t, "arn:aws:sqs:us-east-1:123456789012:external", subProps.RedrivePolicy.DeadLetterTargetArn)
}

func TestApply_SymbolicDLQReferences(t *testing.T) {
	tmpl := ruleTemplate("MyRule")
	cfg := mustNormalize(t, map[string]any{
		"ruleResourceName": "MyRule",
		"topicArn":         testTopicArn,
	}, "processEvent")

	require.NoError(t, Apply(tmpl, cfg))

	qpProps := tmpl.Get("SNStoDLQInsertPolicy").Properties.(*QueuePolicyProperties)
	assert.Equal(t, []any{template.Ref("SNSDeadLetterQueue")}, qpProps.Queues)
	assert.Equal(t, template.GetAtt("SNSDeadLetterQueue", "Arn"), qpProps.PolicyDocument.Statement[0].Resource)

	subProps := tmpl.Get("SubscribeToProcessEventTopic").Properties.(*SubscriptionProperties)
	assert.Equal(t, template.GetAtt("SNSDeadLetterQueue", "Arn"), subProps.RedrivePolicy.DeadLetterTargetArn)
}

func TestApply_FilterPolicyPassthrough(t *testing.T) {
	tmpl := ruleTemplate("MyRule")
	cfg := mustNormalize(t, map[string]any{
		"ruleResourceName": "MyRule",
		"topicArn":         testTopicArn,
		"filterPolicy":     map[string]any{"kind": []any{"order", "refund"}},
	}, "processEvent")

	require.NoError(t, Apply(tmpl, cfg))

	subProps := tmpl.Get("SubscribeToProcessEventTopic").Properties.(*SubscriptionProperties)
	assert.Equal(t, map[string]any{"kind": []any{"order", "refund"}}, subProps.FilterPolicy)
}
