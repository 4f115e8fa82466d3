package kube

import (
	"bytes"
	"os/exec"

	"github.com/hijacksecurity/PravdaPlus/pkg/logging"
)

// execCommand allows mocking of exec.Command for testing.
var execCommand = exec.Command

// ApplyManifests submits the declarative deployment description under
// manifestDir to the cluster via `kubectl apply -f`. It returns an
// *ApplyError when the control plane rejects the spec.
func ApplyManifests(manifestDir, kubeContext, namespace string) error {
	args := []string{"apply", "-f", manifestDir}
	if kubeContext != "" {
		args = append(args, "--context", kubeContext)
	}
	if namespace != "" {
		args = append(args, "--namespace", namespace)
	}

	cmd := execCommand("kubectl", args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	logging.Info("Kube", "Applying manifests from %s", manifestDir)
	if err := cmd.Run(); err != nil {
		return &ApplyError{
			ManifestDir: manifestDir,
			Output:      stderrBuf.String(),
			Err:         err,
		}
	}

	logging.Debug("Kube", "kubectl apply output: %s", stdoutBuf.String())
	return nil
}
