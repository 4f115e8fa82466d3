package config

import "time"

// GetDefaultConfig returns the built-in configuration for a local PravdaPlus
// deployment. User and project config files are layered on top of this.
func GetDefaultConfig() Config {
	return Config{
		Cluster: ClusterSettings{
			Namespace:        "pravdaplus",
			ManifestDir:      "deploy/manifests",
			ReadinessTimeout: 3 * time.Minute,
		},
		Tunnels: []TunnelDefinition{
			{
				Name:       "api",
				Service:    "api-service",
				LocalPort:  8000,
				RemotePort: 8000,
			},
			{
				Name:       "frontend",
				Service:    "frontend-service",
				LocalPort:  8080,
				RemotePort: 80,
			},
		},
		Validation: ValidationSettings{
			APITunnel:        "api",
			FrontendTunnel:   "frontend",
			NewsLimit:        5,
			NewsCategory:     "world",
			TransformStyle:   "satirical",
			MinContentLength: 100,
			RequestTimeout:   30 * time.Second,
		},
	}
}
