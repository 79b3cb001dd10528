package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/sourceplane/litetopo/internal/model"
)

// TemplateSchema is the ARM deployment template schema for resource group scope
const TemplateSchema = "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#"

const (
	rbacType          = "Microsoft.Authorization/roleAssignments"
	rbacAPIVersion    = "2022-04-01"
	sqlRoleType       = "Microsoft.DocumentDB/databaseAccounts/sqlRoleAssignments"
	sqlRoleAPIVersion = "2024-05-15"
)

// Template is an ARM deployment template
type Template struct {
	Schema         string                    `json:"$schema"`
	ContentVersion string                    `json:"contentVersion"`
	Resources      []map[string]interface{}  `json:"resources"`
	Outputs        map[string]TemplateOutput `json:"outputs,omitempty"`
}

// TemplateOutput is a literal template output
type TemplateOutput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func newTemplate() *Template {
	return &Template{
		Schema:         TemplateSchema,
		ContentVersion: "1.0.0.0",
		Resources:      []map[string]interface{}{},
	}
}

// RenderTemplate converts a plan into one ARM template. External role
// assignments are left out: they target another resource group and
// need their own deployment.
func RenderTemplate(plan *model.Plan) (*Template, error) {
	tmpl := newTemplate()

	ids := make(map[string]string, len(plan.Resources)+len(plan.RoleAssignments))
	for _, res := range plan.Resources {
		ids[res.ID] = res.ResourceID
	}
	for _, ra := range plan.RoleAssignments {
		ids[ra.ID] = RoleAssignmentResourceID(ra)
	}

	for _, res := range plan.Resources {
		body, err := ResourceBody(res)
		if err != nil {
			return nil, err
		}
		body["dependsOn"] = translate(res.DependsOn, ids)
		tmpl.Resources = append(tmpl.Resources, body)
	}
	for _, ra := range plan.RoleAssignments {
		if ra.External {
			continue
		}
		body, err := RoleAssignmentBody(ra)
		if err != nil {
			return nil, err
		}
		body["dependsOn"] = translate(ra.DependsOn, ids)
		tmpl.Resources = append(tmpl.Resources, body)
	}

	if len(plan.Outputs) > 0 {
		tmpl.Outputs = make(map[string]TemplateOutput, len(plan.Outputs))
		for k, v := range plan.Outputs {
			tmpl.Outputs[k] = TemplateOutput{Type: "string", Value: escapeLiteral(v)}
		}
	}
	return tmpl, nil
}

// ResourceTemplate wraps a single resource in a template of its own
func ResourceTemplate(res model.PlanResource) (*Template, error) {
	body, err := ResourceBody(res)
	if err != nil {
		return nil, err
	}
	tmpl := newTemplate()
	tmpl.Resources = append(tmpl.Resources, body)
	return tmpl, nil
}

// RoleAssignmentTemplate wraps a single role assignment in a template of its own
func RoleAssignmentTemplate(ra model.PlanRoleAssignment) (*Template, error) {
	body, err := RoleAssignmentBody(ra)
	if err != nil {
		return nil, err
	}
	tmpl := newTemplate()
	tmpl.Resources = append(tmpl.Resources, body)
	return tmpl, nil
}

// ResourceBody returns the template resource for res: its request body
// plus type, apiVersion and the slash-joined template name. Diagnostic
// settings carry the resource they extend in scope instead.
func ResourceBody(res model.PlanResource) (map[string]interface{}, error) {
	body, err := toMap(res.Properties)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", res.ID, err)
	}
	body["type"] = res.Type
	body["apiVersion"] = res.APIVersion
	if res.Kind == model.KindDiagnosticSettings {
		scope, name, err := splitExtension(res.ResourceID)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", res.ID, err)
		}
		body["name"] = name
		body["scope"] = scope
		return body, nil
	}
	name, err := TemplateName(res.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", res.ID, err)
	}
	body["name"] = name
	return body, nil
}

// splitExtension splits the id of an extension resource into the id of the
// resource it extends and its own name.
func splitExtension(resourceID string) (string, string, error) {
	i := strings.LastIndex(resourceID, "/providers/")
	if i <= 0 {
		return "", "", fmt.Errorf("resource id %q is not an extension resource", resourceID)
	}
	if _, err := arm.ParseResourceID(resourceID[:i]); err != nil {
		return "", "", fmt.Errorf("invalid scope in %q: %w", resourceID, err)
	}
	return resourceID[:i], resourceID[strings.LastIndex(resourceID, "/")+1:], nil
}

// RoleAssignmentBody returns the template resource of a role assignment.
// RBAC assignments are extension resources scoped to their target; Cosmos
// DB data-plane assignments are children of the account.
func RoleAssignmentBody(ra model.PlanRoleAssignment) (map[string]interface{}, error) {
	body, err := toMap(ra.Properties)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ra.ID, err)
	}
	if ra.DataPlane {
		account, err := TemplateName(ra.Scope)
		if err != nil {
			return nil, fmt.Errorf("role assignment %s: %w", ra.ID, err)
		}
		body["type"] = sqlRoleType
		body["apiVersion"] = sqlRoleAPIVersion
		body["name"] = account + "/" + ra.Name
		return body, nil
	}
	body["type"] = rbacType
	body["apiVersion"] = rbacAPIVersion
	body["name"] = ra.Name
	body["scope"] = ra.Scope
	return body, nil
}

// RoleAssignmentResourceID is the ARM id the assignment will have once created
func RoleAssignmentResourceID(ra model.PlanRoleAssignment) string {
	if ra.DataPlane {
		return ra.Scope + "/sqlRoleAssignments/" + ra.Name
	}
	return ra.Scope + "/providers/" + rbacType + "/" + ra.Name
}

// TemplateName turns a resource id into the name a template expects,
// e.g. "account/default/container" for a blob container.
func TemplateName(resourceID string) (string, error) {
	rid, err := arm.ParseResourceID(resourceID)
	if err != nil {
		return "", fmt.Errorf("invalid resource id %q: %w", resourceID, err)
	}
	names := make([]string, 0, 4)
	for cur := rid; cur != nil && !isContainer(cur.ResourceType); cur = cur.Parent {
		names = append([]string{cur.Name}, names...)
	}
	return strings.Join(names, "/"), nil
}

// Scope returns the subscription and resource group a resource id lives in
func Scope(resourceID string) (string, string, error) {
	rid, err := arm.ParseResourceID(resourceID)
	if err != nil {
		return "", "", fmt.Errorf("invalid resource id %q: %w", resourceID, err)
	}
	if rid.ResourceGroupName == "" {
		return "", "", fmt.Errorf("resource id %q is not in a resource group", resourceID)
	}
	return rid.SubscriptionID, rid.ResourceGroupName, nil
}

func isContainer(t arm.ResourceType) bool {
	s := t.String()
	return s == arm.ResourceGroupResourceType.String() ||
		s == arm.SubscriptionResourceType.String() ||
		s == arm.TenantResourceType.String()
}

func toMap(v interface{}) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if v == nil {
		return out, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func translate(dependsOn []string, ids map[string]string) []string {
	out := make([]string, 0, len(dependsOn))
	for _, dep := range dependsOn {
		if id, ok := ids[dep]; ok {
			out = append(out, id)
		}
	}
	return out
}

// escapeLiteral keeps ARM from evaluating a literal that starts with '['
func escapeLiteral(v string) string {
	if strings.HasPrefix(v, "[") {
		return "[" + v
	}
	return v
}
