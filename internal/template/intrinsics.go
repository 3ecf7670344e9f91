package template

// Ref returns a CloudFormation Ref intrinsic for a logical resource name.
// The provisioning layer resolves it to the resource's primary identifier
// (for an SQS queue, the queue URL).
func Ref(logicalName string) map[string]any {
	return map[string]any{"Ref": logicalName}
}

// GetAtt returns a CloudFormation Fn::GetAtt intrinsic referencing one
// attribute of another resource in the same template.
func GetAtt(logicalName, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []any{logicalName, attribute}}
}
