package binding

import (
	"fmt"

	"github.com/bridgr-io/bridgr/internal/template"
)

// TopicPolicyProperties shapes the AWS::SNS::TopicPolicy resource shared by
// every binding that keeps the default policy name.
type TopicPolicyProperties struct {
	PolicyDocument *template.PolicyDocument `json:"PolicyDocument"`
	Topics         []any                    `json:"Topics"`
}

// ensureTopicPolicy lets CloudWatch Events publish to this binding's topic.
// The policy document accumulates: each invocation appends one topic entry
// and one statement, never replacing what earlier bindings added.
func ensureTopicPolicy(t *template.Template, cfg Config) error {
	res := t.Get(cfg.TopicPolicyResourceName)
	if res == nil {
		res = &template.Resource{
			Type: "AWS::SNS::TopicPolicy",
			Properties: &TopicPolicyProperties{
				PolicyDocument: &template.PolicyDocument{Version: template.PolicyVersion},
			},
		}
		t.Put(cfg.TopicPolicyResourceName, res)
	}

	props, ok := res.Properties.(*TopicPolicyProperties)
	if !ok {
		return fmt.Errorf("resource %q already exists and is not a topic policy", cfg.TopicPolicyResourceName)
	}

	props.Topics = append(props.Topics, cfg.TopicArn)
	props.PolicyDocument.Append(&template.Statement{
		Effect:    "Allow",
		Principal: template.Principal{Service: "events.amazonaws.com"},
		Action:    "sns:Publish",
		Resource:  cfg.TopicArn,
	})
	return nil
}
