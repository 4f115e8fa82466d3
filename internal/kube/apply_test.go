package kube

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyManifests_Success(t *testing.T) {
	original := execCommand
	defer func() { execCommand = original }()

	var gotArgs []string
	execCommand = func(name string, args ...string) *exec.Cmd {
		gotArgs = append([]string{name}, args...)
		return exec.Command("true")
	}

	err := ApplyManifests("deploy/manifests", "kind-pravda", "pravdaplus")
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"kubectl", "apply", "-f", "deploy/manifests",
		"--context", "kind-pravda",
		"--namespace", "pravdaplus",
	}, gotArgs)
}

func TestApplyManifests_Rejected(t *testing.T) {
	original := execCommand
	defer func() { execCommand = original }()

	execCommand = func(name string, args ...string) *exec.Cmd {
		return exec.Command("false")
	}

	err := ApplyManifests("deploy/manifests", "", "")
	require.Error(t, err)

	var applyErr *ApplyError
	require.True(t, errors.As(err, &applyErr))
	assert.Equal(t, "deploy/manifests", applyErr.ManifestDir)
}

func TestApplyManifests_OmitsEmptyFlags(t *testing.T) {
	original := execCommand
	defer func() { execCommand = original }()

	var gotArgs []string
	execCommand = func(name string, args ...string) *exec.Cmd {
		gotArgs = args
		return exec.Command("true")
	}

	err := ApplyManifests("deploy/manifests", "", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"apply", "-f", "deploy/manifests"}, gotArgs)
}
