// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - FakeClient: In-memory Azure resource manager that records every call
//   - ClientFixture: Pre-configured fakes for common scenarios
//
// Import it aliased to avoid clashing with the standard library:
//
//	testutil "github.com/strandhq/strand-azure/internal/testing"
//
// Usage:
//
//	cfg := testutil.NewConfigBuilder().
//	    WithClusterName("test").
//	    WithLocation("westeurope").
//	    Build()
//
//	fake := testutil.NewFakeClient()
//	fake.SeedResourceGroup("strand-test", "westeurope")
package testing
