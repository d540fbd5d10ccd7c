package azure

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/util/retry"
)

// EnsureOperation encapsulates get-or-create logic for any ARM resource.
// It supports optional update and validation logic for existing resources.
//
// Usage example:
//
//	func (c *RealClient) EnsureResourceGroup(ctx context.Context, name, location string) (*armresources.ResourceGroup, error) {
//	    return (&EnsureOperation[*armresources.ResourceGroup, string]{
//	        Name:         name,
//	        ResourceType: "resource group",
//	        Get: func(ctx context.Context) (*armresources.ResourceGroup, error) { ... },
//	        Create: func(ctx context.Context, location string) (*armresources.ResourceGroup, error) { ... },
//	        CreateOptsMapper: func() string { return location },
//	    }).Execute(ctx, c.timeouts)
//	}
//
// Get must surface the raw ARM error on failure so absence (404) can be told
// apart from a failed lookup. Create implementations block until the ARM
// operation completes (PollUntilDone), so a successful Execute always means
// the resource is fully provisioned.
type EnsureOperation[T any, CreateOpts any] struct {
	Name         string
	ResourceType string

	// Timeout bounds the whole operation. Zero falls back to the
	// ResourceCreate timeout.
	Timeout time.Duration

	// Get retrieves the resource. A not-found error means absent.
	Get func(ctx context.Context) (T, error)

	// Create creates the resource and waits for completion.
	Create func(ctx context.Context, opts CreateOpts) (T, error)

	// Update reconciles an existing resource (optional). Used where a run
	// must mutate existing state, such as rotating a database password.
	Update func(ctx context.Context, existing T) (T, error)

	// Validate checks if an existing resource matches desired state (optional).
	Validate func(existing T) error

	// CreateOptsMapper maps input parameters to create options.
	CreateOptsMapper func() CreateOpts
}

// Execute performs the ensure operation: get the existing resource,
// validate/update it if present, or create it when absent.
func (op *EnsureOperation[T, CreateOpts]) Execute(ctx context.Context, timeouts *config.Timeouts) (T, error) {
	var zero T

	timeout := op.Timeout
	if timeout == 0 {
		timeout = timeouts.ResourceCreate
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	existing, err := op.Get(ctx)
	if err == nil {
		if op.Validate != nil {
			if err := op.Validate(existing); err != nil {
				return zero, err
			}
		}

		if op.Update != nil {
			updated, err := op.Update(ctx, existing)
			if err != nil {
				return zero, fmt.Errorf("failed to update %s %s: %w", op.ResourceType, op.Name, err)
			}
			log.Printf("%s %s exists, updated", op.ResourceType, op.Name)
			return updated, nil
		}

		log.Printf("%s %s exists, reusing", op.ResourceType, op.Name)
		return existing, nil
	}

	if !IsNotFound(err) {
		return zero, fmt.Errorf("failed to get %s %s: %w", op.ResourceType, op.Name, err)
	}

	log.Printf("Creating %s %s...", op.ResourceType, op.Name)
	created, err := op.Create(ctx, op.CreateOptsMapper())
	if err != nil {
		return zero, fmt.Errorf("failed to create %s %s: %w", op.ResourceType, op.Name, err)
	}

	return created, nil
}

// DeleteOperation encapsulates deletion logic for any ARM resource.
// It provides consistent retry, timeout, and error handling across all
// resource types.
type DeleteOperation[T any] struct {
	Name         string
	ResourceType string

	// Get retrieves the resource. A not-found error means already gone.
	Get func(ctx context.Context) (T, error)

	// Delete removes the resource and waits for completion.
	Delete func(ctx context.Context) error
}

// Execute performs the delete operation with retry logic and timeout
// handling. The operation is idempotent: it succeeds if the resource does
// not exist. Throttled or conflicting deletes are retried with exponential
// backoff.
func (op *DeleteOperation[T]) Execute(ctx context.Context, timeouts *config.Timeouts) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		if _, err := op.Get(ctx); err != nil {
			if IsNotFound(err) {
				return nil
			}
			return retry.Fatal(fmt.Errorf("failed to get %s %s: %w", op.ResourceType, op.Name, err))
		}

		if err := op.Delete(ctx); err != nil {
			if isRetryable(err) {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.Name, err))
		}
		return nil
	},
		retry.WithMaxRetries(timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(timeouts.RetryInitialDelay))
}
