// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, and maximum delay. It is used for Azure Resource
// Manager calls that may fail transiently, such as role assignments racing
// the replication of a freshly created managed identity.
package retry
