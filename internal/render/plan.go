package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourceplane/litetopo/internal/model"
	"gopkg.in/yaml.v3"
)

// Plan document identity
const (
	PlanAPIVersion = "litetopo.sourceplane.io/v1"
	PlanKind       = "TopologyPlan"
)

// Renderer materializes a topology into a Plan
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderPlan creates the plan document of a topology
func (r *Renderer) RenderPlan(metadata model.Metadata, topo *model.Topology) *model.Plan {
	cfg := topo.Config
	plan := &model.Plan{
		APIVersion: PlanAPIVersion,
		Kind:       PlanKind,
		Metadata: model.Metadata{
			Name:        metadata.Name,
			Description: metadata.Description,
		},
		Spec: model.PlanSpec{
			SolutionSuffix:    topo.SolutionSuffix,
			SubscriptionID:    cfg.SubscriptionID,
			ResourceGroup:     cfg.ResourceGroupName,
			Location:          cfg.Location,
			SecondaryLocation: secondaryOf(topo),
			Cloud:             cfg.Cloud,
			Rules:             topo.Rules,
			Waves:             topo.Waves,
		},
		Resources:       make([]model.PlanResource, 0, len(topo.Resources)),
		References:      topo.References,
		RoleAssignments: make([]model.PlanRoleAssignment, 0, len(topo.RoleAssignments)),
		Edges:           topo.Edges,
		Outputs:         topo.Outputs,
	}

	for _, res := range topo.Resources {
		plan.Resources = append(plan.Resources, model.PlanResource{
			ID:         res.ID,
			Kind:       res.Kind,
			Type:       res.Type,
			APIVersion: res.APIVersion,
			Name:       res.Name,
			ResourceID: res.ResourceID,
			Location:   res.Location,
			DependsOn:  nonNil(res.DependsOn),
			Tags:       res.Tags,
			Properties: res.Properties,
		})
	}

	for _, ra := range topo.RoleAssignments {
		plan.RoleAssignments = append(plan.RoleAssignments, model.PlanRoleAssignment{
			ID:         ra.NodeID(),
			Name:       ra.Name,
			Role:       ra.Role,
			Scope:      ra.Scope,
			Principal:  ra.Principal,
			External:   ra.External,
			DataPlane:  ra.DataPlane,
			DependsOn:  nonNil(ra.DependsOn),
			Properties: ra.Properties,
		})
	}

	return plan
}

func secondaryOf(topo *model.Topology) string {
	if v, ok := topo.Outputs["AZURE_SECONDARY_LOCATION"]; ok {
		return v
	}
	return ""
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// RenderJSON renders plan as JSON
func (r *Renderer) RenderJSON(plan *model.Plan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}

// RenderYAML renders plan as YAML. SDK payloads go through JSON first so
// their field names match the ARM wire format.
func (r *Renderer) RenderYAML(plan *model.Plan) ([]byte, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// WritePlan writes plan to file (JSON or YAML based on extension)
func (r *Renderer) WritePlan(plan *model.Plan, path string) error {
	var data []byte
	var err error

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = r.RenderYAML(plan)
	default:
		data, err = r.RenderJSON(plan)
	}

	if err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan to %s: %w", path, err)
	}

	return nil
}

// LoadPlan reads a plan written by WritePlan
func LoadPlan(path string) (*model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan model.Plan
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &plan)
	default:
		err = json.Unmarshal(data, &plan)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &plan, nil
}

// DebugDump outputs debug information about the plan
func (r *Renderer) DebugDump(plan *model.Plan) string {
	output := fmt.Sprintf("Plan: %s (%s)\n", plan.Metadata.Name, plan.Metadata.Description)
	output += fmt.Sprintf("Suffix: %s  Location: %s  Cloud: %s\n", plan.Spec.SolutionSuffix, plan.Spec.Location, plan.Spec.Cloud)
	output += fmt.Sprintf("Resources: %d  Role assignments: %d  Waves: %d\n\n",
		len(plan.Resources), len(plan.RoleAssignments), len(plan.Spec.Waves))

	for _, res := range plan.Resources {
		output += fmt.Sprintf("Resource: %s\n", res.ID)
		output += fmt.Sprintf("  Type: %s@%s\n", res.Type, res.APIVersion)
		output += fmt.Sprintf("  Name: %s\n", res.Name)
		output += fmt.Sprintf("  DependsOn: %v\n", res.DependsOn)
		output += "\n"
	}

	return output
}
