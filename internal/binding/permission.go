package binding

import "github.com/bridgr-io/bridgr/internal/template"

// PermissionProperties shapes the AWS::Lambda::Permission resource granting
// SNS the right to invoke the function.
type PermissionProperties struct {
	FunctionName any    `json:"FunctionName"`
	Action       string `json:"Action"`
	Principal    string `json:"Principal"`
	SourceArn    string `json:"SourceArn"`
}

// grantInvokePermission always creates a fresh permission resource, scoped
// to this binding's topic.
func grantInvokePermission(t *template.Template, cfg Config) error {
	t.Put(cfg.FuncName+"InvokeFrom"+cfg.TopicResourceName, &template.Resource{
		Type: "AWS::Lambda::Permission",
		Properties: &PermissionProperties{
			FunctionName: template.GetAtt(cfg.FuncLogicalName, "Arn"),
			Action:       "lambda:InvokeFunction",
			Principal:    "sns.amazonaws.com",
			SourceArn:    cfg.TopicArn,
		},
	})
	return nil
}
