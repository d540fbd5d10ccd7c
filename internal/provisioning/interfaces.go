package provisioning

// Phase is a single step of the install or uninstall pipeline. Phases are
// run in order by RunPhases and share discoveries through Context.State.
type Phase interface {
	// Name returns the human readable phase name used in progress output.
	Name() string

	// Provision performs the phase's work. Implementations must be
	// idempotent: running them against already provisioned resources
	// reuses what exists instead of failing.
	Provision(ctx *Context) error
}
