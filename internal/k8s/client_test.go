package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
)

func newFakeCluster(t *testing.T, objects ...client.Object) Client {
	t.Helper()
	cli := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(objects...).Build()
	return NewFromClient(cli)
}

func TestSecret_NotFound(t *testing.T) {
	t.Parallel()
	cluster := newFakeCluster(t)

	_, err := cluster.Secret(context.Background(), "strand", "strand-database")

	require.Error(t, err)
	assert.True(t, apierrors.IsNotFound(err), "absence must surface as NotFound")
}

func TestSecret_Found(t *testing.T) {
	t.Parallel()
	cluster := newFakeCluster(t, &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: "strand", Name: "strand-database"},
		Data:       map[string][]byte{"password": []byte("hunter2")},
	})

	secret, err := cluster.Secret(context.Background(), "strand", "strand-database")

	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), secret.Data["password"])
}

func TestDeleteSecret_AbsentIsSuccess(t *testing.T) {
	t.Parallel()
	cluster := newFakeCluster(t)

	err := cluster.DeleteSecret(context.Background(), "strand", "strand-pull-secret")

	assert.NoError(t, err)
}

func TestDeleteSecret_RemovesExisting(t *testing.T) {
	t.Parallel()
	cluster := newFakeCluster(t, &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: "strand", Name: "strand-registry"},
	})

	require.NoError(t, cluster.DeleteSecret(context.Background(), "strand", "strand-registry"))

	_, err := cluster.Secret(context.Background(), "strand", "strand-registry")
	assert.True(t, apierrors.IsNotFound(err))
}

func TestDeleteService_AbsentIsSuccess(t *testing.T) {
	t.Parallel()
	cluster := newFakeCluster(t)

	err := cluster.DeleteService(context.Background(), "strand", "proxy")

	assert.NoError(t, err)
}

func TestRestartDeployment_SetsAnnotation(t *testing.T) {
	t.Parallel()
	fakeClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(readyDeployment("strand", "proxy")).Build()
	cluster := NewFromClient(fakeClient)

	err := cluster.RestartDeployment(context.Background(), "strand", "proxy")
	require.NoError(t, err)

	var deployment appsv1.Deployment
	require.NoError(t, fakeClient.Get(context.Background(), client.ObjectKey{Namespace: "strand", Name: "proxy"}, &deployment))
	assert.NotEmpty(t, deployment.Spec.Template.Annotations[RestartAnnotation])
}

func TestWaitForDeployment_Ready(t *testing.T) {
	t.Parallel()
	cluster := newFakeCluster(t, readyDeployment("cert-manager", "cert-manager-webhook"))

	err := cluster.WaitForDeployment(context.Background(), "cert-manager", "cert-manager-webhook", 5*time.Second)

	assert.NoError(t, err)
}

func TestWaitForDeployment_Timeout(t *testing.T) {
	t.Parallel()
	deployment := readyDeployment("cert-manager", "cert-manager-webhook")
	deployment.Status.AvailableReplicas = 0
	cluster := newFakeCluster(t, deployment)

	err := cluster.WaitForDeployment(context.Background(), "cert-manager", "cert-manager-webhook", 50*time.Millisecond)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready within")
}

func TestIsDeploymentReady(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*appsv1.Deployment)
		ready  bool
	}{
		{name: "fully available", mutate: func(*appsv1.Deployment) {}, ready: true},
		{name: "replica lagging", mutate: func(d *appsv1.Deployment) { d.Status.UpdatedReplicas = 0 }, ready: false},
		{name: "unavailable", mutate: func(d *appsv1.Deployment) { d.Status.AvailableReplicas = 0 }, ready: false},
		{name: "no condition", mutate: func(d *appsv1.Deployment) { d.Status.Conditions = nil }, ready: false},
		{name: "nil replicas", mutate: func(d *appsv1.Deployment) { d.Spec.Replicas = nil }, ready: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deployment := readyDeployment("strand", "server")
			tt.mutate(deployment)
			assert.Equal(t, tt.ready, IsDeploymentReady(deployment))
		})
	}
}

func readyDeployment(namespace, name string) *appsv1.Deployment {
	replicas := int32(1)
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Template: corev1.PodTemplateSpec{},
		},
		Status: appsv1.DeploymentStatus{
			Replicas:          1,
			UpdatedReplicas:   1,
			AvailableReplicas: 1,
			Conditions: []appsv1.DeploymentCondition{{
				Type:   appsv1.DeploymentAvailable,
				Status: corev1.ConditionTrue,
			}},
		},
	}
}
