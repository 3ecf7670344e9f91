package binding

import "github.com/bridgr-io/bridgr/internal/template"

// SubscriptionProperties shapes the AWS::SNS::Subscription resource binding
// the topic to the function.
type SubscriptionProperties struct {
	TopicArn      string         `json:"TopicArn"`
	Endpoint      any            `json:"Endpoint"`
	Protocol      string         `json:"Protocol"`
	RedrivePolicy *RedrivePolicy `json:"RedrivePolicy,omitempty"`
	FilterPolicy  map[string]any `json:"FilterPolicy"`
}

// RedrivePolicy routes failed deliveries to the dead-letter queue.
type RedrivePolicy struct {
	DeadLetterTargetArn any `json:"deadLetterTargetArn"`
}

// createSubscription always creates a fresh subscription resource; its
// logical name is unique per topic, so nothing is ever merged.
func createSubscription(t *template.Template, cfg Config) error {
	t.Put("SubscribeTo"+cfg.TopicResourceName, &template.Resource{
		Type: "AWS::SNS::Subscription",
		Properties: &SubscriptionProperties{
			TopicArn: cfg.TopicArn,
			Endpoint: template.GetAtt(cfg.FuncLogicalName, "Arn"),
			Protocol: "lambda",
			RedrivePolicy: &RedrivePolicy{
				DeadLetterTargetArn: cfg.DLQArnRef().Value(),
			},
			FilterPolicy: cfg.FilterPolicy,
		},
	})
	return nil
}
