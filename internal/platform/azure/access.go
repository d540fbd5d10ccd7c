package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/google/uuid"

	"github.com/strandhq/strand-azure/internal/util/retry"
)

// Built-in Azure role definition GUIDs used by the installer.
// https://learn.microsoft.com/azure/role-based-access-control/built-in-roles
const (
	RoleAcrPull                    = "7f951dda-4ed3-4680-a7ca-43fe172d538d"
	RoleDNSZoneContributor         = "befefa01-2a29-4197-83a8-272ff33ce314"
	RoleStorageBlobDataContributor = "ba92f5b4-2d11-453d-a403-e96b0029c9fe"
)

// EnsureRoleAssignment grants roleDefinitionID to principalID at scope.
//
// The assignment name is derived deterministically from its content, so a
// re-run asks for the same assignment and gets RoleAssignmentExists back,
// which counts as success. Plain conflicts and propagation lag on freshly
// created identities (surfacing as PrincipalNotFound) are retried.
func (c *RealClient) EnsureRoleAssignment(ctx context.Context, scope, roleDefinitionID, principalID string) error {
	name := roleAssignmentName(scope, roleDefinitionID, principalID)

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ResourceCreate)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.assignments.Create(ctx, scope, name, armauthorization.RoleAssignmentCreateParameters{
			Properties: &armauthorization.RoleAssignmentProperties{
				PrincipalID:      to.Ptr(principalID),
				RoleDefinitionID: to.Ptr(roleDefinitionID),
				PrincipalType:    to.Ptr(armauthorization.PrincipalTypeServicePrincipal),
			},
		}, nil)
		if err == nil || IsRoleAssignmentExists(err) {
			return nil
		}
		if hasErrorCode(err, "PrincipalNotFound") || isRetryable(err) {
			return err
		}
		return retry.Fatal(fmt.Errorf("failed to create role assignment at %s: %w", scope, err))
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// RoleDefinitionID expands a built-in role GUID to its full ARM path within
// the client's subscription.
func (c *RealClient) RoleDefinitionID(roleGUID string) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		c.subscriptionID, roleGUID)
}

// roleAssignmentName produces the assignment GUID from its identifying
// triple. ARM requires a GUID name; hashing the triple makes it stable
// across runs.
func roleAssignmentName(scope, roleDefinitionID, principalID string) string {
	seed := fmt.Sprintf("%s|%s|%s", scope, roleDefinitionID, principalID)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}
