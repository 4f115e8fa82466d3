package kube

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// FleetStatus returns how many pods in the namespace are in the Running
// phase versus the total, plus a per-pod listing for diagnosis.
var FleetStatus = func(ctx context.Context, clientset kubernetes.Interface, namespace string) (running int, total int, listing string, err error) {
	podList, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to list pods: %w", err)
	}

	total = len(podList.Items)
	lines := make([]string, 0, total)
	for _, pod := range podList.Items {
		if pod.Status.Phase == corev1.PodRunning {
			running++
		}
		lines = append(lines, fmt.Sprintf("%s=%s", pod.Name, pod.Status.Phase))
	}
	return running, total, strings.Join(lines, ", "), nil
}
