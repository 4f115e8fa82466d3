package kube

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"

	"github.com/hijacksecurity/PravdaPlus/pkg/logging"
)

const readinessPollInterval = 3 * time.Second

// AwaitDeploymentsReady blocks until every Deployment in the namespace
// reports all replicas ready, or the timeout elapses. On timeout it returns
// a *ReadinessTimeout naming the workloads still pending. It never retries
// beyond the deadline and never returns a partial success.
func AwaitDeploymentsReady(ctx context.Context, clientset kubernetes.Interface, namespace string, timeout time.Duration) error {
	var pending []string

	err := wait.PollUntilContextTimeout(ctx, readinessPollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		deployments, err := clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			return false, fmt.Errorf("failed to list deployments in %s: %w", namespace, err)
		}
		if len(deployments.Items) == 0 {
			pending = []string{"(no deployments found)"}
			return false, nil
		}

		pending = pending[:0]
		for _, d := range deployments.Items {
			if !deploymentReady(&d) {
				pending = append(pending, fmt.Sprintf("%s (%d/%d)", d.Name, d.Status.ReadyReplicas, desiredReplicas(&d)))
			}
		}
		if len(pending) > 0 {
			logging.Debug("Kube", "Waiting for deployments in %s: %v", namespace, pending)
			return false, nil
		}
		return true, nil
	})

	if err != nil {
		if wait.Interrupted(err) {
			return &ReadinessTimeout{Namespace: namespace, Pending: pending, Timeout: timeout}
		}
		return err
	}

	logging.Info("Kube", "All deployments in %s are ready", namespace)
	return nil
}

func desiredReplicas(d *appsv1.Deployment) int32 {
	if d.Spec.Replicas != nil {
		return *d.Spec.Replicas
	}
	return 1
}

func deploymentReady(d *appsv1.Deployment) bool {
	desired := desiredReplicas(d)
	return desired > 0 && d.Status.ReadyReplicas == desired && d.Status.UpdatedReplicas == desired
}
