package expand

import (
	"fmt"
	"sort"

	"github.com/sourceplane/litetopo/internal/model"
)

// Result is the resource set produced by the inclusion rules
type Result struct {
	Resources       []model.ResourceSpec
	References      []model.ExternalReference
	RoleAssignments []model.RoleAssignment
	Edges           []model.Edge
	Rules           []string
}

// Expander evaluates the inclusion rules against a context
type Expander struct {
	ctx   *Context
	rules []Rule
}

// NewExpander creates an expander over the default rule set
func NewExpander(ctx *Context) *Expander {
	return &Expander{
		ctx:   ctx,
		rules: DefaultRules(),
	}
}

// Expand evaluates every rule whose predicate holds and collects what they contribute
func (e *Expander) Expand() (*Result, error) {
	b := newBuilder(e.ctx)
	fired := make([]string, 0, len(e.rules))

	for _, rule := range e.rules {
		if !rule.When(&e.ctx.Config) {
			continue
		}
		b.rule = rule.Name
		if err := rule.Contribute(e.ctx, b); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		fired = append(fired, rule.Name)
	}

	result := b.result()
	result.Rules = fired
	return result, nil
}

// Builder accumulates contributions. Rules only add; nothing is removed.
type Builder struct {
	ctx        *Context
	rule       string
	resources  map[string]*model.ResourceSpec
	references map[string]*model.ExternalReference
	roles      map[string]*model.RoleAssignment
	edges      map[model.Edge]bool
}

func newBuilder(ctx *Context) *Builder {
	return &Builder{
		ctx:        ctx,
		resources:  make(map[string]*model.ResourceSpec),
		references: make(map[string]*model.ExternalReference),
		roles:      make(map[string]*model.RoleAssignment),
		edges:      make(map[model.Edge]bool),
	}
}

// AddResource adds a local resource, filling in type, api version and tags
func (b *Builder) AddResource(spec model.ResourceSpec) (*model.ResourceSpec, error) {
	if _, exists := b.resources[spec.ID]; exists {
		return nil, fmt.Errorf("resource %s contributed twice", spec.ID)
	}
	info := spec.Kind.Info()
	spec.Type = info.Type
	spec.APIVersion = info.APIVersion
	spec.Rule = b.rule
	if spec.Tags == nil {
		spec.Tags = copyTags(b.ctx.Config.Tags)
	}
	if spec.DependsOn == nil {
		spec.DependsOn = []string{}
	}
	b.resources[spec.ID] = &spec
	return &spec, nil
}

// AddReference records an external resource
func (b *Builder) AddReference(ref model.ExternalReference) {
	ref.Rule = b.rule
	b.references[ref.ID] = &ref
}

// AddRoleAssignment records an assignment; identical assignments collapse.
func (b *Builder) AddRoleAssignment(ra model.RoleAssignment) {
	if _, exists := b.roles[ra.Name]; exists {
		return
	}
	b.roles[ra.Name] = &ra
}

// AddEdge records a typed edge
func (b *Builder) AddEdge(e model.Edge) {
	b.edges[e] = true
}

// Resource returns a previously contributed resource
func (b *Builder) Resource(id string) (*model.ResourceSpec, bool) {
	r, ok := b.resources[id]
	return r, ok
}

// Reference returns a previously contributed reference
func (b *Builder) Reference(id string) (*model.ExternalReference, bool) {
	r, ok := b.references[id]
	return r, ok
}

// ResourceIDs returns contributed resource ids in sorted order
func (b *Builder) ResourceIDs() []string {
	ids := make([]string, 0, len(b.resources))
	for id := range b.resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b *Builder) result() *Result {
	res := &Result{
		Resources:       make([]model.ResourceSpec, 0, len(b.resources)),
		References:      make([]model.ExternalReference, 0, len(b.references)),
		RoleAssignments: make([]model.RoleAssignment, 0, len(b.roles)),
		Edges:           make([]model.Edge, 0, len(b.edges)),
	}

	for _, id := range b.ResourceIDs() {
		r := *b.resources[id]
		sort.Strings(r.DependsOn)
		res.Resources = append(res.Resources, r)
	}

	for _, ref := range b.references {
		res.References = append(res.References, *ref)
	}
	sort.Slice(res.References, func(i, j int) bool {
		return res.References[i].ID < res.References[j].ID
	})

	for _, ra := range b.roles {
		sort.Strings(ra.DependsOn)
		res.RoleAssignments = append(res.RoleAssignments, *ra)
	}
	sort.Slice(res.RoleAssignments, func(i, j int) bool {
		return res.RoleAssignments[i].Name < res.RoleAssignments[j].Name
	})

	for e := range b.edges {
		res.Edges = append(res.Edges, e)
	}
	sort.Slice(res.Edges, func(i, j int) bool {
		a, c := res.Edges[i], res.Edges[j]
		if a.Kind != c.Kind {
			return a.Kind < c.Kind
		}
		if a.From != c.From {
			return a.From < c.From
		}
		if a.To != c.To {
			return a.To < c.To
		}
		return a.Label < c.Label
	})

	return res
}

func copyTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
