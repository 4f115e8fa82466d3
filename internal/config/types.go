package config

import (
	"time"
)

// Config is the top-level configuration structure for pravdactl.
type Config struct {
	Cluster    ClusterSettings    `yaml:"cluster"`
	Tunnels    []TunnelDefinition `yaml:"tunnels"`
	Validation ValidationSettings `yaml:"validation"`
}

// ClusterSettings describe how to reach the deployment and where it lives.
type ClusterSettings struct {
	KubeContext      string        `yaml:"kubeContext,omitempty"`      // empty means the current context
	Namespace        string        `yaml:"namespace,omitempty"`        // namespace all services are deployed into
	ManifestDir      string        `yaml:"manifestDir,omitempty"`      // directory passed to kubectl apply -f
	ReadinessTimeout time.Duration `yaml:"readinessTimeout,omitempty"` // deadline for workloads to report ready
}

// TunnelDefinition describes a single port-forward from a local port to a
// service inside the cluster.
type TunnelDefinition struct {
	Name       string `yaml:"name"`                // unique name, e.g. "api"
	Service    string `yaml:"service"`             // target Kubernetes service name
	Namespace  string `yaml:"namespace,omitempty"` // overrides Cluster.Namespace when set
	LocalPort  int    `yaml:"localPort"`
	RemotePort int    `yaml:"remotePort"`
}

// ValidationSettings hold the tunable parameters of the check catalogue.
type ValidationSettings struct {
	APITunnel      string `yaml:"apiTunnel,omitempty"`      // name of the tunnel reaching the API service
	FrontendTunnel string `yaml:"frontendTunnel,omitempty"` // name of the tunnel reaching the frontend

	NewsLimit    int    `yaml:"newsLimit,omitempty"`    // limit parameter for listing checks
	NewsCategory string `yaml:"newsCategory,omitempty"` // category for the scoped listing check

	TransformStyle   string `yaml:"transformStyle,omitempty"`   // style sent to the transform endpoint
	MinContentLength int    `yaml:"minContentLength,omitempty"` // below this the transform check downgrades to Warn

	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty"` // per-probe HTTP timeout
}

// TunnelByName returns the tunnel definition with the given name, or false
// when no tunnel with that name is configured.
func (c Config) TunnelByName(name string) (TunnelDefinition, bool) {
	for _, t := range c.Tunnels {
		if t.Name == name {
			return t, true
		}
	}
	return TunnelDefinition{}, false
}

// TunnelNamespace resolves the effective namespace for a tunnel definition.
func (c Config) TunnelNamespace(t TunnelDefinition) string {
	if t.Namespace != "" {
		return t.Namespace
	}
	return c.Cluster.Namespace
}
