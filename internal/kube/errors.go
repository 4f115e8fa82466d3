package kube

import (
	"fmt"
	"time"
)

// ApplyError indicates the control plane rejected the deployment spec.
type ApplyError struct {
	ManifestDir string
	Output      string
	Err         error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("failed to apply manifests from %s: %v: %s", e.ManifestDir, e.Err, e.Output)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// ReadinessTimeout indicates a workload never reported ready within the
// deadline. There is no partial-success value: ready or timed out.
type ReadinessTimeout struct {
	Namespace string
	Pending   []string
	Timeout   time.Duration
}

func (e *ReadinessTimeout) Error() string {
	return fmt.Sprintf("deployments in %s not ready after %s: %v", e.Namespace, e.Timeout, e.Pending)
}
