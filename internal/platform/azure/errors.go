package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// IsNotFound reports whether an error is an ARM 404. This is the only error
// the ensure operations treat as "resource absent"; every other failure
// aborts the run so a flaky lookup can never masquerade as absence.
func IsNotFound(err error) bool {
	return hasStatusCode(err, http.StatusNotFound)
}

// IsConflict reports whether an error is an ARM 409.
func IsConflict(err error) bool {
	return hasStatusCode(err, http.StatusConflict)
}

// IsRoleAssignmentExists reports the specific 409 returned when a role
// assignment with identical properties is already in place.
func IsRoleAssignmentExists(err error) bool {
	return hasErrorCode(err, "RoleAssignmentExists")
}

// isRetryable reports whether an error is worth retrying: throttling,
// server-side failures, and optimistic-concurrency conflicts.
func isRetryable(err error) bool {
	return hasStatusCode(err,
		http.StatusTooManyRequests,
		http.StatusConflict,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	)
}

// hasStatusCode checks if the error is an ARM response error with one of the
// given HTTP status codes.
func hasStatusCode(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, code := range codes {
			if respErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// hasErrorCode checks if the error is an ARM response error with one of the
// given ARM error codes.
func hasErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, code := range codes {
			if respErr.ErrorCode == code {
				return true
			}
		}
	}
	return false
}
