package provisioning

import (
	"context"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/platform/azure"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Infrastructure results (populated by the infrastructure phase)
	Kubeconfig         []byte // cluster admin kubeconfig
	KubeletPrincipalID string // object ID of the kubelet managed identity

	// Service results (populated by the services phase)
	RegistryCredentials *azure.RegistryCredentials
	DatabaseServerName  string
	DatabaseHost        string
	DatabasePassword    string
	StorageAccountName  string
	StorageAccountKey   string
	NameServers         []string // DNS zone name servers, nil when managed DNS is off
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Azure    azure.ResourceManager
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context. A nil observer is replaced
// by a console observer so phases never have to nil-check.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	client azure.ResourceManager,
	observer Observer,
) *Context {
	if observer == nil {
		observer = NewConsoleObserver()
	}
	timeouts := cfg.Timeouts
	if timeouts == nil {
		timeouts = config.DefaultTimeouts()
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Azure:    client,
		Observer: observer,
		Timeouts: timeouts,
	}
}
