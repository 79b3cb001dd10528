package azure

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/sourceplane/litetopo/internal/model"
)

// FoundryProject identifies an existing AI Foundry project
type FoundryProject struct {
	ResourceID        string
	SubscriptionID    string
	ResourceGroupName string
	AccountName       string
	ProjectName       string
}

// AccountResourceID is the id of the AI services account that owns the project
func (p *FoundryProject) AccountResourceID() string {
	return ResourceRID(p.SubscriptionID, p.ResourceGroupName, "Microsoft.CognitiveServices/accounts", p.AccountName)
}

// Workspace identifies an existing Log Analytics workspace
type Workspace struct {
	ResourceID        string
	SubscriptionID    string
	ResourceGroupName string
	Name              string
}

// ParseFoundryProjectID validates a .../accounts/{account}/projects/{project} id.
func ParseFoundryProjectID(id string) (*FoundryProject, error) {
	resourceID, err := parse(id, "existingAiProjectResourceId")
	if err != nil {
		return nil, err
	}

	rt := resourceID.ResourceType
	if !strings.EqualFold(rt.Namespace, "Microsoft.CognitiveServices") ||
		len(rt.Types) != 2 ||
		!strings.EqualFold(rt.Types[0], "accounts") ||
		!strings.EqualFold(rt.Types[1], "projects") {
		return nil, model.Errorf(model.InvalidResourceReference, "existingAiProjectResourceId",
			"not a Foundry project resource ID, expected /subscriptions/{sub}/resourceGroups/{rg}/providers/Microsoft.CognitiveServices/accounts/{account}/projects/{project}")
	}

	return &FoundryProject{
		ResourceID:        id,
		SubscriptionID:    resourceID.SubscriptionID,
		ResourceGroupName: resourceID.ResourceGroupName,
		AccountName:       resourceID.Parent.Name,
		ProjectName:       resourceID.Name,
	}, nil
}

// ParseWorkspaceID validates a Microsoft.OperationalInsights/workspaces/{name} id.
func ParseWorkspaceID(id string) (*Workspace, error) {
	resourceID, err := parse(id, "existingLogAnalyticsWorkspaceId")
	if err != nil {
		return nil, err
	}

	rt := resourceID.ResourceType
	if !strings.EqualFold(rt.Namespace, "Microsoft.OperationalInsights") ||
		len(rt.Types) != 1 ||
		!strings.EqualFold(rt.Types[0], "workspaces") {
		return nil, model.Errorf(model.InvalidResourceReference, "existingLogAnalyticsWorkspaceId",
			"not a Log Analytics workspace resource ID, expected /subscriptions/{sub}/resourceGroups/{rg}/providers/Microsoft.OperationalInsights/workspaces/{name}")
	}

	return &Workspace{
		ResourceID:        id,
		SubscriptionID:    resourceID.SubscriptionID,
		ResourceGroupName: resourceID.ResourceGroupName,
		Name:              resourceID.Name,
	}, nil
}

func parse(id, field string) (*arm.ResourceID, error) {
	resourceID, err := arm.ParseResourceID(id)
	if err != nil {
		return nil, &model.ResolveError{
			Kind:    model.InvalidResourceReference,
			Field:   field,
			Message: "failed to parse resource ID",
			Err:     err,
		}
	}
	if resourceID.SubscriptionID == "" || resourceID.ResourceGroupName == "" || resourceID.Name == "" {
		return nil, model.Errorf(model.InvalidResourceReference, field,
			"resource ID %q is missing its subscription, resource group or name", id)
	}
	return resourceID, nil
}

// ResourceGroupRID creates the resource id of a resource group
func ResourceGroupRID(subscriptionID, resourceGroupName string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, resourceGroupName)
}

// ResourceRID creates the id of a resource of the given ARM type. Child
// types take one name per type segment, e.g.
// ResourceRID(s, g, "Microsoft.CognitiveServices/accounts/projects", "acct", "proj").
func ResourceRID(subscriptionID, resourceGroupName, resourceType string, names ...string) string {
	parts := strings.Split(resourceType, "/")
	var sb strings.Builder
	sb.WriteString(ResourceGroupRID(subscriptionID, resourceGroupName))
	sb.WriteString("/providers/")
	sb.WriteString(parts[0])
	for i, t := range parts[1:] {
		sb.WriteString("/")
		sb.WriteString(t)
		if i < len(names) {
			sb.WriteString("/")
			sb.WriteString(names[i])
		}
	}
	return sb.String()
}

// RoleDefinitionRID creates the subscription-scoped id of a built-in role definition
func RoleDefinitionRID(subscriptionID, roleID string) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s", subscriptionID, roleID)
}
