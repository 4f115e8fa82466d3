// Package kube wraps the Kubernetes interactions pravdactl needs: building
// clientsets from kubeconfig contexts, applying deployment manifests,
// waiting for workloads to report ready, and tallying the running pod fleet
// of a namespace.
package kube
