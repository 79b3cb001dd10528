package model

// Plan is the serialized topology handed to the provisioning engine
type Plan struct {
	APIVersion      string               `yaml:"apiVersion" json:"apiVersion"`
	Kind            string               `yaml:"kind" json:"kind"`
	Metadata        Metadata             `yaml:"metadata" json:"metadata"`
	Spec            PlanSpec             `yaml:"spec" json:"spec"`
	Resources       []PlanResource       `yaml:"resources" json:"resources"`
	References      []ExternalReference  `yaml:"references,omitempty" json:"references,omitempty"`
	RoleAssignments []PlanRoleAssignment `yaml:"roleAssignments" json:"roleAssignments"`
	Edges           []Edge               `yaml:"edges" json:"edges"`
	Outputs         map[string]string    `yaml:"outputs" json:"outputs"`
}

// PlanSpec holds resolution facts about the plan
type PlanSpec struct {
	SolutionSuffix    string     `yaml:"solutionSuffix" json:"solutionSuffix"`
	SubscriptionID    string     `yaml:"subscriptionId" json:"subscriptionId"`
	ResourceGroup     string     `yaml:"resourceGroup" json:"resourceGroup"`
	Location          string     `yaml:"location" json:"location"`
	SecondaryLocation string     `yaml:"secondaryLocation,omitempty" json:"secondaryLocation,omitempty"`
	Cloud             string     `yaml:"cloud" json:"cloud"`
	Rules             []string   `yaml:"rules" json:"rules"`
	Waves             [][]string `yaml:"waves" json:"waves"`
}

// PlanResource is one node of the plan
type PlanResource struct {
	ID         string            `yaml:"id" json:"id"`
	Kind       ResourceKind      `yaml:"kind" json:"kind"`
	Type       string            `yaml:"type" json:"type"`
	APIVersion string            `yaml:"apiVersion" json:"apiVersion"`
	Name       string            `yaml:"name" json:"name"`
	ResourceID string            `yaml:"resourceId" json:"resourceId"`
	Location   string            `yaml:"location,omitempty" json:"location,omitempty"`
	DependsOn  []string          `yaml:"dependsOn" json:"dependsOn"`
	Tags       map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Properties any               `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// PlanRoleAssignment is a role assignment node of the plan
type PlanRoleAssignment struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Role       string   `yaml:"role" json:"role"`
	Scope      string   `yaml:"scope" json:"scope"`
	Principal  string   `yaml:"principal" json:"principal"`
	External   bool     `yaml:"external,omitempty" json:"external,omitempty"`
	DataPlane  bool     `yaml:"dataPlane,omitempty" json:"dataPlane,omitempty"`
	DependsOn  []string `yaml:"dependsOn" json:"dependsOn"`
	Properties any      `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Nodes returns every schedulable node id with its dependencies.
func (p *Plan) Nodes() map[string][]string {
	nodes := make(map[string][]string, len(p.Resources)+len(p.RoleAssignments))
	for _, r := range p.Resources {
		nodes[r.ID] = r.DependsOn
	}
	for _, ra := range p.RoleAssignments {
		nodes[ra.ID] = ra.DependsOn
	}
	return nodes
}
