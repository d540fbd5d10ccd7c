package azure

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleAssignmentName_Deterministic(t *testing.T) {
	scope := "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.ContainerRegistry/registries/reg"
	role := "/subscriptions/sub/providers/Microsoft.Authorization/roleDefinitions/" + RoleAcrPull
	principal := "11111111-1111-1111-1111-111111111111"

	first := roleAssignmentName(scope, role, principal)
	second := roleAssignmentName(scope, role, principal)

	assert.Equal(t, first, second, "same triple must map to the same assignment name")
	_, err := uuid.Parse(first)
	assert.NoError(t, err, "assignment name must be a valid GUID")
}

func TestRoleAssignmentName_DistinctTriples(t *testing.T) {
	scope := "/subscriptions/sub/resourceGroups/rg"
	a := roleAssignmentName(scope, RoleAcrPull, "principal-a")
	b := roleAssignmentName(scope, RoleAcrPull, "principal-b")
	c := roleAssignmentName(scope, RoleDNSZoneContributor, "principal-a")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRoleDefinitionID(t *testing.T) {
	c := &RealClient{subscriptionID: "sub-1"}
	got := c.RoleDefinitionID(RoleStorageBlobDataContributor)
	assert.Equal(t,
		"/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/"+RoleStorageBlobDataContributor,
		got)
}
