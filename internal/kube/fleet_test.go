package kube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func makePod(name string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "pravdaplus"},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func TestFleetStatus(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		makePod("api-1", corev1.PodRunning),
		makePod("frontend-1", corev1.PodRunning),
		makePod("transformer-1", corev1.PodPending),
	)

	running, total, listing, err := FleetStatus(context.Background(), clientset, "pravdaplus")
	require.NoError(t, err)

	assert.Equal(t, 2, running)
	assert.Equal(t, 3, total)
	assert.Contains(t, listing, "transformer-1=Pending")
}

func TestFleetStatus_EmptyNamespace(t *testing.T) {
	clientset := fake.NewSimpleClientset()

	running, total, listing, err := FleetStatus(context.Background(), clientset, "pravdaplus")
	require.NoError(t, err)

	assert.Equal(t, 0, running)
	assert.Equal(t, 0, total)
	assert.Empty(t, listing)
}
