package binding

import (
	"strings"
	"unicode"
)

// EventKind is the manifest event key this binder recognizes.
const EventKind = "cloudwatchSns"

// Default logical names for the shared resources. Every binding that does
// not override them accumulates into the same queue and policy documents.
const (
	defaultDLQResourceName         = "SNSDeadLetterQueue"
	defaultDLQPolicyResourceName   = "SNStoDLQInsertPolicy"
	defaultTopicPolicyResourceName = "CWEtoSNSInsertPolicy"
)

// declaredFields is the schema surface of the raw binding configuration.
// Anything else is rejected during normalization.
var declaredFields = map[string]bool{
	"ruleResourceName":        true,
	"topicArn":                true,
	"dlqArn":                  true,
	"dlqUrl":                  true,
	"dlqResourceName":         true,
	"dlqPolicyResourceName":   true,
	"topicPolicyResourceName": true,
	"ruleMessage":             true,
	"filterPolicy":            true,
	"prefix":                  true,
}

// Config is one normalized event binding. It is constructed once per
// binding, immutable afterwards, and passed by value through the pipeline.
type Config struct {
	// FuncName is the function's name in PascalCase; FuncLogicalName is the
	// logical name of its AWS::Lambda::Function resource in the template.
	FuncName        string
	FuncLogicalName string

	RuleResourceName string
	TopicArn         string

	// TopicResourceName is always derived from the function name, never
	// user-supplied; it keys the subscription, permission, and rule-target
	// names so each topic stays unique within the shared resources.
	TopicResourceName string

	Prefix                  string
	DLQArn                  string
	DLQURL                  string
	DLQResourceName         string
	DLQPolicyResourceName   string
	TopicPolicyResourceName string

	RuleMessage  map[string]any
	FilterPolicy map[string]any
}

// DLQArnRef resolves how the queue's ARN is referenced: the caller-supplied
// literal when present, otherwise the created queue's Arn attribute.
func (c Config) DLQArnRef() ResourceRef {
	if c.DLQArn != "" {
		return LiteralRef(c.DLQArn)
	}
	return SymbolicRef(c.DLQResourceName, "Arn")
}

// DLQQueueRef resolves how the queue itself is referenced in a queue policy:
// the caller-supplied URL when present, otherwise a Ref to the created queue
// (which resolves to its URL).
func (c Config) DLQQueueRef() ResourceRef {
	if c.DLQURL != "" {
		return LiteralRef(c.DLQURL)
	}
	return SymbolicRef(c.DLQResourceName, "")
}

// Normalize validates one raw binding configuration and fills every default.
// It is a pure function: no template mutation happens here, so a rejected
// binding leaves the build output untouched.
func Normalize(raw map[string]any, funcName, service, stage string) (Config, error) {
	for field := range raw {
		if !declaredFields[field] {
			return Config{}, &UnknownFieldError{Function: funcName, Field: field}
		}
	}

	cfg := Config{
		RuleResourceName:        stringField(raw, "ruleResourceName"),
		TopicArn:                stringField(raw, "topicArn"),
		Prefix:                  stringField(raw, "prefix"),
		DLQArn:                  stringField(raw, "dlqArn"),
		DLQURL:                  stringField(raw, "dlqUrl"),
		DLQResourceName:         stringField(raw, "dlqResourceName"),
		DLQPolicyResourceName:   stringField(raw, "dlqPolicyResourceName"),
		TopicPolicyResourceName: stringField(raw, "topicPolicyResourceName"),
		RuleMessage:             mapField(raw, "ruleMessage"),
		FilterPolicy:            mapField(raw, "filterPolicy"),
	}

	if cfg.RuleResourceName == "" {
		return Config{}, &MissingFieldError{Function: funcName, Field: "ruleResourceName"}
	}
	if cfg.TopicArn == "" {
		return Config{}, &MissingFieldError{Function: funcName, Field: "topicArn"}
	}

	cfg.FuncName = pascalCase(funcName)
	cfg.FuncLogicalName = cfg.FuncName + "LambdaFunction"
	cfg.TopicResourceName = cfg.FuncName + "Topic"

	if cfg.Prefix == "" {
		cfg.Prefix = service + "-" + stage + "-"
	}
	if cfg.DLQResourceName == "" {
		cfg.DLQResourceName = defaultDLQResourceName
	}
	if cfg.DLQPolicyResourceName == "" {
		cfg.DLQPolicyResourceName = defaultDLQPolicyResourceName
	}
	if cfg.TopicPolicyResourceName == "" {
		cfg.TopicPolicyResourceName = defaultTopicPolicyResourceName
	}
	if cfg.RuleMessage == nil {
		cfg.RuleMessage = map[string]any{}
	}
	if cfg.FilterPolicy == nil {
		cfg.FilterPolicy = map[string]any{}
	}

	return cfg, nil
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

func mapField(raw map[string]any, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok {
		return m
	}
	return nil
}

// pascalCase normalizes a function name for use in logical resource names:
// "processEvent" -> "ProcessEvent", "process-event" -> "ProcessEvent".
func pascalCase(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if r == '-' || r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
