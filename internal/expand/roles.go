package expand

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v2"
	"github.com/google/uuid"
	"github.com/sourceplane/litetopo/internal/azure"
	"github.com/sourceplane/litetopo/internal/model"
)

// roleAssignmentNamespace seeds the name-based UUIDs of role assignments
var roleAssignmentNamespace = uuid.MustParse("b1d6c2f4-3e8a-5c71-9f0d-4a2e6b8c1d35")

// Grant is one row of the role catalog
type Grant struct {
	Principal string
	Target    string
	Role      azure.Role
}

// Catalog lists every grant the topology may need. Rows whose principal or
// target is absent from a topology are skipped.
var Catalog = []Grant{
	{IDIdentity, IDAIServices, azure.RoleCognitiveServicesOpenAIUser},
	{IDIdentity, IDAIServices, azure.RoleAzureAIUser},
	{IDIdentity, IDStorage, azure.RoleStorageBlobDataContributor},
	{IDIdentity, IDSearch, azure.RoleSearchIndexDataContributor},
	{IDIdentity, IDCosmos, azure.RoleCosmosBuiltInDataContributor},
	{IDIdentity, IDKeyVault, azure.RoleKeyVaultSecretsUser},
	{IDIdentity, IDContainerRegistry, azure.RoleAcrPull},
	{IDSearch, IDAIServices, azure.RoleCognitiveServicesOpenAIUser},
	{IDSearch, IDStorage, azure.RoleStorageBlobDataReader},
	{IDAIServices, IDSearch, azure.RoleSearchIndexDataReader},
	{IDAIServices, IDStorage, azure.RoleStorageBlobDataReader},
	{IDDeployingPrincipal, IDAIServices, azure.RoleAzureAIUser},
	{IDDeployingPrincipal, IDSearch, azure.RoleSearchIndexDataContributor},
	{IDDeployingPrincipal, IDStorage, azure.RoleStorageBlobDataContributor},
	{IDDeployingPrincipal, IDCosmos, azure.RoleCosmosBuiltInDataContributor},
}

type scope struct {
	resourceID     string
	subscriptionID string
	external       bool
	local          bool
}

type principal struct {
	// key identifies the principal in the assignment name
	key           string
	principalID   string
	principalType string
	local         bool
}

func contributeRoleAssignments(ctx *Context, b *Builder) error {
	for _, g := range Catalog {
		target, ok := resolveScope(ctx, b, g.Target)
		if !ok {
			continue
		}
		p, ok := resolvePrincipal(ctx, b, g.Principal)
		if !ok {
			continue
		}

		var roleDefinitionID string
		if g.Role.DataPlane {
			roleDefinitionID = fmt.Sprintf("%s/sqlRoleDefinitions/%s", target.resourceID, g.Role.ID)
		} else {
			roleDefinitionID = azure.RoleDefinitionRID(target.subscriptionID, g.Role.ID)
		}

		ra := model.RoleAssignment{
			Name:             assignmentName(target.resourceID, roleDefinitionID, p.key),
			Role:             g.Role.Name,
			RoleDefinitionID: roleDefinitionID,
			Scope:            target.resourceID,
			Target:           g.Target,
			Principal:        g.Principal,
			PrincipalID:      p.principalID,
			PrincipalType:    p.principalType,
			External:         target.external,
			DataPlane:        g.Role.DataPlane,
			DependsOn:        []string{},
		}
		if target.local {
			ra.DependsOn = append(ra.DependsOn, g.Target)
		}
		if p.local {
			ra.DependsOn = append(ra.DependsOn, g.Principal)
		}
		ra.Properties = assignmentBody(ra)

		b.AddRoleAssignment(ra)
		b.AddEdge(model.Edge{From: g.Principal, To: g.Target, Kind: model.EdgeRoleAssignment, Label: g.Role.Name})
	}
	return nil
}

func resolveScope(ctx *Context, b *Builder, id string) (scope, bool) {
	if r, ok := b.Resource(id); ok {
		return scope{resourceID: r.ResourceID, subscriptionID: ctx.Config.SubscriptionID, local: true}, true
	}
	if ref, ok := b.Reference(id); ok {
		return scope{
			resourceID:     ref.ResourceID,
			subscriptionID: ref.SubscriptionID,
			external:       !strings.EqualFold(ref.SubscriptionID, ctx.Config.SubscriptionID) || !strings.EqualFold(ref.ResourceGroup, ctx.Config.ResourceGroupName),
		}, true
	}
	return scope{}, false
}

func resolvePrincipal(ctx *Context, b *Builder, id string) (principal, bool) {
	if id == IDDeployingPrincipal {
		if !DeployingPrincipal(&ctx.Config) {
			return principal{}, false
		}
		return principal{
			key:           ctx.Config.PrincipalID,
			principalID:   ctx.Config.PrincipalID,
			principalType: ctx.Config.PrincipalType,
		}, true
	}

	r, ok := b.Resource(id)
	if !ok {
		// a referenced account's identity is managed by its own deployment
		return principal{}, false
	}
	p := principal{key: r.ResourceID, principalType: model.PrincipalServicePrincipal, local: true}
	if r.Kind == model.KindManagedIdentity {
		p.principalID = ctx.identityPrincipalExpr()
	} else {
		p.principalID = fmt.Sprintf("[reference('%s', '%s', 'Full').identity.principalId]", r.ResourceID, r.APIVersion)
	}
	return p, true
}

// assignmentName is stable for the same scope, role and principal, so
// re-resolving never produces a second assignment
func assignmentName(scope, roleDefinitionID, principalKey string) string {
	key := strings.ToLower(strings.Join([]string{scope, roleDefinitionID, principalKey}, "|"))
	return uuid.NewSHA1(roleAssignmentNamespace, []byte(key)).String()
}

func assignmentBody(ra model.RoleAssignment) any {
	if ra.DataPlane {
		return &armcosmos.SQLRoleAssignmentCreateUpdateParameters{
			Properties: &armcosmos.SQLRoleAssignmentResource{
				PrincipalID:      to.Ptr(ra.PrincipalID),
				RoleDefinitionID: to.Ptr(ra.RoleDefinitionID),
				Scope:            to.Ptr(ra.Scope),
			},
		}
	}
	return &armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			RoleDefinitionID: to.Ptr(ra.RoleDefinitionID),
			PrincipalID:      to.Ptr(ra.PrincipalID),
			PrincipalType:    to.Ptr(armauthorization.PrincipalType(ra.PrincipalType)),
		},
	}
}
