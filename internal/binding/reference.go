package binding

import "github.com/bridgr-io/bridgr/internal/template"

// ResourceRef is either a literal identifier supplied by the caller (an ARN
// or URL of a pre-existing resource) or a symbolic reference to a resource
// created in the template, resolved later by the provisioning layer. The two
// are mutually exclusive; the literal wins when present.
type ResourceRef struct {
	literal     string
	logicalName string
	attribute   string
}

// LiteralRef wraps an externally supplied identifier.
func LiteralRef(id string) ResourceRef {
	return ResourceRef{literal: id}
}

// SymbolicRef references a template resource by logical name, optionally
// narrowed to one attribute. An empty attribute renders as Ref, otherwise
// Fn::GetAtt.
func SymbolicRef(logicalName, attribute string) ResourceRef {
	return ResourceRef{logicalName: logicalName, attribute: attribute}
}

// IsLiteral reports whether the reference carries a caller-supplied
// identifier.
func (r ResourceRef) IsLiteral() bool {
	return r.literal != ""
}

// Value renders the reference for embedding in resource properties.
func (r ResourceRef) Value() any {
	if r.literal != "" {
		return r.literal
	}
	if r.attribute != "" {
		return template.GetAtt(r.logicalName, r.attribute)
	}
	return template.Ref(r.logicalName)
}
