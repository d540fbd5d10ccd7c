package k8s

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// FieldManager identifies the installer in server-side apply operations.
// Force ownership under this name lets a re-run take fields back from a
// previous run without manual conflict resolution.
const FieldManager = "strand-azure"

// Client is the cluster surface the installer needs.
type Client interface {
	// ApplyManifests applies a multi-document YAML stream object by object.
	ApplyManifests(ctx context.Context, manifests []byte) error

	// ApplyObject applies a single object. The object must carry its
	// apiVersion and kind.
	ApplyObject(ctx context.Context, obj client.Object) error

	// Secret fetches a secret. Absence is reported as a NotFound error the
	// caller can test with k8s.io/apimachinery/pkg/api/errors.
	Secret(ctx context.Context, namespace, name string) (*corev1.Secret, error)

	// UpsertSecret applies a secret with replace semantics: the stored data
	// becomes exactly the given data.
	UpsertSecret(ctx context.Context, secret *corev1.Secret) error

	// DeleteSecret removes a secret, tolerating absence.
	DeleteSecret(ctx context.Context, namespace, name string) error

	// DeleteService removes a service, tolerating absence.
	DeleteService(ctx context.Context, namespace, name string) error

	// RestartDeployment triggers a rolling restart of a deployment.
	RestartDeployment(ctx context.Context, namespace, name string) error

	// WaitForDeployment blocks until the deployment is fully available or
	// the timeout expires.
	WaitForDeployment(ctx context.Context, namespace, name string, timeout time.Duration) error
}

// clusterClient implements Client on top of a controller-runtime client.
type clusterClient struct {
	cli client.Client
}

// NewFromKubeconfig builds a Client from kubeconfig bytes, avoiding any
// temporary kubeconfig files on disk.
func NewFromKubeconfig(kubeconfig []byte) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build REST config from kubeconfig: %w", err)
	}

	cli, err := client.New(restConfig, client.Options{Scheme: newScheme()})
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster client: %w", err)
	}

	return &clusterClient{cli: cli}, nil
}

// NewFromClient wraps an existing controller-runtime client. Used by tests.
func NewFromClient(cli client.Client) Client {
	return &clusterClient{cli: cli}
}

// newScheme registers the typed APIs the installer touches. Everything else
// flows through as unstructured objects.
func newScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(corev1.AddToScheme(scheme))
	utilruntime.Must(appsv1.AddToScheme(scheme))
	utilruntime.Must(rbacv1.AddToScheme(scheme))
	return scheme
}
