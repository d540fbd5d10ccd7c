package azure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
)

func respErr(status int, code string) error {
	return &azcore.ResponseError{
		StatusCode: status,
		ErrorCode:  code,
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(respErr(http.StatusNotFound, "ResourceGroupNotFound")))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", respErr(http.StatusNotFound, "ResourceNotFound"))))
	assert.False(t, IsNotFound(respErr(http.StatusForbidden, "AuthorizationFailed")))
	assert.False(t, IsNotFound(errors.New("dial tcp: connection refused")))
	assert.False(t, IsNotFound(nil))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(respErr(http.StatusConflict, "Conflict")))
	assert.False(t, IsConflict(respErr(http.StatusNotFound, "NotFound")))
}

func TestIsRoleAssignmentExists(t *testing.T) {
	assert.True(t, IsRoleAssignmentExists(respErr(http.StatusConflict, "RoleAssignmentExists")))
	assert.False(t, IsRoleAssignmentExists(respErr(http.StatusConflict, "Conflict")))
	assert.False(t, IsRoleAssignmentExists(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(respErr(http.StatusTooManyRequests, "TooManyRequests")))
	assert.True(t, isRetryable(respErr(http.StatusServiceUnavailable, "ServiceUnavailable")))
	assert.True(t, isRetryable(respErr(http.StatusConflict, "Conflict")))
	assert.False(t, isRetryable(respErr(http.StatusBadRequest, "InvalidParameter")))
	assert.False(t, isRetryable(respErr(http.StatusNotFound, "NotFound")))
}
