package ir

// Manifest is the host-supplied service declaration: global provider
// settings plus every function and its ordered event bindings.
type Manifest struct {
	Service   string               `pkl:"service"`
	Provider  *Provider            `pkl:"provider"`
	Functions map[string]*Function `pkl:"functions"`
}

// Provider carries the deployment-wide settings read by the binder.
type Provider struct {
	Stage  string `pkl:"stage"`
	Region string `pkl:"region"`
}

// Function is one declared compute function. Each event is a single-key
// mapping from event kind to that kind's raw configuration.
type Function struct {
	Handler string           `pkl:"handler"`
	Events  []map[string]any `pkl:"events"`
}

// Stage returns the deployment stage, defaulting to "dev" when the manifest
// does not declare one.
func (m *Manifest) Stage() string {
	if m.Provider == nil || m.Provider.Stage == "" {
		return "dev"
	}
	return m.Provider.Stage
}

// Region returns the deployment region, defaulting to us-east-1.
func (m *Manifest) Region() string {
	if m.Provider == nil || m.Provider.Region == "" {
		return "us-east-1"
	}
	return m.Provider.Region
}
