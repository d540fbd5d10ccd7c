package k8s

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/wait"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// RestartAnnotation is the pod-template annotation a rolling restart bumps.
// Same key kubectl rollout restart uses, so both tools observe each other.
const RestartAnnotation = "kubectl.kubernetes.io/restartedAt"

const deploymentPollInterval = 5 * time.Second

// RestartDeployment patches the pod template with a fresh restart timestamp,
// triggering a rolling restart without touching anything else in the spec.
func (c *clusterClient) RestartDeployment(ctx context.Context, namespace, name string) error {
	patch := fmt.Sprintf(
		`{"spec":{"template":{"metadata":{"annotations":{%q:%q}}}}}`,
		RestartAnnotation, time.Now().UTC().Format(time.RFC3339),
	)
	deployment := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
	}
	if err := c.cli.Patch(ctx, deployment, client.RawPatch(types.MergePatchType, []byte(patch))); err != nil {
		return fmt.Errorf("failed to restart deployment %s/%s: %w", namespace, name, err)
	}
	return nil
}

// DeleteService removes a service. Absence is success.
func (c *clusterClient) DeleteService(ctx context.Context, namespace, name string) error {
	service := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
	}
	if err := c.cli.Delete(ctx, service); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete service %s/%s: %w", namespace, name, err)
	}
	return nil
}

// WaitForDeployment polls until the deployment reports full availability.
// Lookup errors are treated as not-ready because the deployment may not have
// been created yet when the wait starts.
func (c *clusterClient) WaitForDeployment(ctx context.Context, namespace, name string, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, deploymentPollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			var deployment appsv1.Deployment
			if err := c.cli.Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, &deployment); err != nil {
				return false, nil
			}
			return IsDeploymentReady(&deployment), nil
		})
	if err != nil {
		return fmt.Errorf("deployment %s/%s not ready within %v: %w", namespace, name, timeout, err)
	}
	return nil
}

// IsDeploymentReady reports whether every replica is updated and available.
func IsDeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment.Spec.Replicas == nil {
		return false
	}
	replicas := *deployment.Spec.Replicas
	if deployment.Status.UpdatedReplicas != replicas ||
		deployment.Status.Replicas != replicas ||
		deployment.Status.AvailableReplicas != replicas {
		return false
	}
	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentAvailable && condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
