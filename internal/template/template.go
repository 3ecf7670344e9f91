package template

// Template is the CloudFormation document being assembled. All binding
// mutations write into the same Template instance before it is serialized
// and handed to the provisioning step.
type Template struct {
	AWSTemplateFormatVersion string               `json:"AWSTemplateFormatVersion,omitempty" yaml:"AWSTemplateFormatVersion,omitempty"`
	Description              string               `json:"Description,omitempty" yaml:"Description,omitempty"`
	Resources                map[string]*Resource `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]any       `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// Resource is a single entry in the Resources mapping. Properties is either
// a typed property struct (for resources bridgr creates) or a map[string]any
// (for resources decoded from an existing template).
type Resource struct {
	Type       string   `json:"Type" yaml:"Type"`
	Properties any      `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// New returns an empty template with an initialized Resources mapping.
func New() *Template {
	return &Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources:                make(map[string]*Resource),
	}
}

// Has reports whether a resource exists under the given logical name.
func (t *Template) Has(name string) bool {
	_, ok := t.Resources[name]
	return ok
}

// Put registers a resource under a logical name. Logical names are never
// reassigned to a different resource once created; callers check Has first.
func (t *Template) Put(name string, res *Resource) {
	if t.Resources == nil {
		t.Resources = make(map[string]*Resource)
	}
	t.Resources[name] = res
}

// Get returns the resource under the given logical name, or nil.
func (t *Template) Get(name string) *Resource {
	return t.Resources[name]
}
