package orchestration

import (
	"context"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/provisioning/infrastructure"
	"github.com/strandhq/strand-azure/internal/provisioning/issuer"
	"github.com/strandhq/strand-azure/internal/provisioning/services"
)

// Reconciler drives the resources of an installation toward the configured
// state. Phases run in dependency order: the cluster must exist before
// anything can be installed into it, and the issuer must be ready before
// the services phase's credentials reach a cluster that serves traffic.
type Reconciler struct {
	client   azure.ResourceManager
	observer provisioning.Observer
	phases   []provisioning.Phase
}

// NewReconciler creates a reconciler with the standard phase order.
func NewReconciler(client azure.ResourceManager, observer provisioning.Observer) *Reconciler {
	return &Reconciler{
		client:   client,
		observer: observer,
		phases: []provisioning.Phase{
			infrastructure.NewProvisioner(),
			issuer.NewProvisioner(),
			services.NewProvisioner(),
		},
	}
}

// Reconcile runs all phases and returns the state they accumulated:
// kubeconfig, kubelet identity, and every generated credential. The first
// failing phase aborts the run; re-invocation is the recovery mechanism.
func (r *Reconciler) Reconcile(ctx context.Context, cfg *config.Config) (*provisioning.State, error) {
	pctx := provisioning.NewContext(ctx, cfg, r.client, r.observer)
	if err := provisioning.RunPhases(pctx, r.phases); err != nil {
		return nil, err
	}
	return pctx.State, nil
}
