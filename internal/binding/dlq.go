package binding

import "github.com/bridgr-io/bridgr/internal/template"

// QueueProperties shapes the AWS::SQS::Queue resource for the default DLQ.
type QueueProperties struct {
	QueueName              string `json:"QueueName"`
	MessageRetentionPeriod int    `json:"MessageRetentionPeriod"`
}

// maxRetentionSeconds is the SQS ceiling (14 days). Failed deliveries stay
// inspectable for as long as the platform allows.
const maxRetentionSeconds = 1209600

// ensureDeadLetterQueue provisions the default DLQ when the binding does not
// bring an external queue. The first binding under a given logical name
// creates it; later bindings sharing that name reuse it.
func ensureDeadLetterQueue(t *template.Template, cfg Config) error {
	if cfg.DLQArn != "" || cfg.DLQURL != "" {
		return nil
	}
	if t.Has(cfg.DLQResourceName) {
		return nil
	}

	t.Put(cfg.DLQResourceName, &template.Resource{
		Type: "AWS::SQS::Queue",
		Properties: &QueueProperties{
			QueueName:              cfg.Prefix + cfg.DLQResourceName,
			MessageRetentionPeriod: maxRetentionSeconds,
		},
	})
	return nil
}
