package binding

import (
	"fmt"

	"github.com/bridgr-io/bridgr/internal/template"
)

// QueuePolicyProperties shapes the AWS::SQS::QueuePolicy resource attached
// to the dead-letter queue.
type QueuePolicyProperties struct {
	PolicyDocument *template.PolicyDocument `json:"PolicyDocument"`
	Queues         []any                    `json:"Queues"`
}

// ensureQueuePolicy lets SNS deliver failed messages into the DLQ, scoped to
// this binding's topic. Mirrors ensureTopicPolicy on the queue side: one
// queue entry and one statement appended per invocation.
func ensureQueuePolicy(t *template.Template, cfg Config) error {
	res := t.Get(cfg.DLQPolicyResourceName)
	if res == nil {
		res = &template.Resource{
			Type: "AWS::SQS::QueuePolicy",
			Properties: &QueuePolicyProperties{
				PolicyDocument: &template.PolicyDocument{Version: template.PolicyVersion},
			},
		}
		t.Put(cfg.DLQPolicyResourceName, res)
	}

	props, ok := res.Properties.(*QueuePolicyProperties)
	if !ok {
		return fmt.Errorf("resource %q already exists and is not a queue policy", cfg.DLQPolicyResourceName)
	}

	props.Queues = append(props.Queues, cfg.DLQQueueRef().Value())
	props.PolicyDocument.Append(&template.Statement{
		Effect:    "Allow",
		Principal: template.Principal{Service: "sns.amazonaws.com"},
		Action:    "sqs:SendMessage",
		Resource:  cfg.DLQArnRef().Value(),
		Condition: map[string]any{
			"ArnEquals": map[string]any{"aws:SourceArn": cfg.TopicArn},
		},
	})
	return nil
}
