package testing

import (
	"context"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/strandhq/strand-azure/internal/k8s"
)

// Cluster object operations as they appear in recorded calls.
const (
	ClusterOpApplyObject    = "apply-object"
	ClusterOpApplyManifests = "apply-manifests"
	ClusterOpGetSecret      = "get-secret"
	ClusterOpUpsertSecret   = "upsert-secret"
	ClusterOpDeleteSecret   = "delete-secret"
	ClusterOpDeleteService  = "delete-service"
	ClusterOpRestart        = "restart-deployment"
	ClusterOpWait           = "wait-deployment"
)

// ClusterCall records one operation performed against the fake cluster.
type ClusterCall struct {
	Op   string
	Kind string
	Name string
}

// FakeCluster is an in-memory implementation of k8s.Client. Secrets are
// stored so upserts and gets observe each other; every operation lands in
// the call trace in order.
type FakeCluster struct {
	mu    sync.Mutex
	calls []ClusterCall

	secrets map[string]*corev1.Secret
	applied []client.Object

	// FailOn maps an operation constant to the error it should return.
	FailOn map[string]error
}

var _ k8s.Client = (*FakeCluster)(nil)

// NewFakeCluster creates an empty fake cluster.
func NewFakeCluster() *FakeCluster {
	return &FakeCluster{
		secrets: make(map[string]*corev1.Secret),
		FailOn:  make(map[string]error),
	}
}

// Calls returns a copy of the recorded call trace.
func (f *FakeCluster) Calls() []ClusterCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]ClusterCall, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// CallsOp returns the recorded calls with the given operation.
func (f *FakeCluster) CallsOp(op string) []ClusterCall {
	var matched []ClusterCall
	for _, c := range f.Calls() {
		if c.Op == op {
			matched = append(matched, c)
		}
	}
	return matched
}

// Applied returns every object submitted through ApplyObject, in order.
func (f *FakeCluster) Applied() []client.Object {
	f.mu.Lock()
	defer f.mu.Unlock()
	applied := make([]client.Object, len(f.applied))
	copy(applied, f.applied)
	return applied
}

// SeedSecret places a secret into the fake cluster, as if a previous run
// had written it.
func (f *FakeCluster) SeedSecret(secret *corev1.Secret) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.secrets[secret.Namespace+"/"+secret.Name] = secret.DeepCopy()
}

// StoredSecret returns the current copy of a stored secret, or nil.
func (f *FakeCluster) StoredSecret(namespace, name string) *corev1.Secret {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.secrets[namespace+"/"+name]; ok {
		return s.DeepCopy()
	}
	return nil
}

func (f *FakeCluster) record(op, kind, name string) {
	f.calls = append(f.calls, ClusterCall{Op: op, Kind: kind, Name: name})
}

// ApplyManifests implements k8s.Client.
func (f *FakeCluster) ApplyManifests(_ context.Context, manifests []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpApplyManifests]; err != nil {
		return err
	}
	objects, err := k8s.DecodeManifests(manifests)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		f.applied = append(f.applied, obj)
		f.record(ClusterOpApplyManifests, obj.GetKind(), obj.GetName())
	}
	return nil
}

// ApplyObject implements k8s.Client.
func (f *FakeCluster) ApplyObject(_ context.Context, obj client.Object) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpApplyObject]; err != nil {
		return err
	}
	f.applied = append(f.applied, obj)
	f.record(ClusterOpApplyObject, obj.GetObjectKind().GroupVersionKind().Kind, obj.GetName())
	return nil
}

// Secret implements k8s.Client.
func (f *FakeCluster) Secret(_ context.Context, namespace, name string) (*corev1.Secret, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpGetSecret]; err != nil {
		return nil, err
	}
	f.record(ClusterOpGetSecret, "Secret", name)
	if s, ok := f.secrets[namespace+"/"+name]; ok {
		return s.DeepCopy(), nil
	}
	return nil, apierrors.NewNotFound(schema.GroupResource{Resource: "secrets"}, name)
}

// UpsertSecret implements k8s.Client.
func (f *FakeCluster) UpsertSecret(_ context.Context, secret *corev1.Secret) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpUpsertSecret]; err != nil {
		return err
	}
	f.secrets[secret.Namespace+"/"+secret.Name] = secret.DeepCopy()
	f.record(ClusterOpUpsertSecret, "Secret", secret.Name)
	return nil
}

// DeleteSecret implements k8s.Client.
func (f *FakeCluster) DeleteSecret(_ context.Context, namespace, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpDeleteSecret]; err != nil {
		return err
	}
	delete(f.secrets, namespace+"/"+name)
	f.record(ClusterOpDeleteSecret, "Secret", name)
	return nil
}

// DeleteService implements k8s.Client.
func (f *FakeCluster) DeleteService(_ context.Context, _, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpDeleteService]; err != nil {
		return err
	}
	f.record(ClusterOpDeleteService, "Service", name)
	return nil
}

// RestartDeployment implements k8s.Client.
func (f *FakeCluster) RestartDeployment(_ context.Context, _, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpRestart]; err != nil {
		return err
	}
	f.record(ClusterOpRestart, "Deployment", name)
	return nil
}

// WaitForDeployment implements k8s.Client. The fake's deployments are
// always ready.
func (f *FakeCluster) WaitForDeployment(_ context.Context, _, name string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.FailOn[ClusterOpWait]; err != nil {
		return err
	}
	f.record(ClusterOpWait, "Deployment", name)
	return nil
}
