package runner

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/planner"
	"golang.org/x/sync/errgroup"
)

// Node is one schedulable unit of a plan. Exactly one of Resource and
// RoleAssignment is set.
type Node struct {
	ID             string
	Resource       *model.PlanResource
	RoleAssignment *model.PlanRoleAssignment
}

// Describe returns a one-line description of the node
func (n Node) Describe() string {
	if n.Resource != nil {
		return fmt.Sprintf("%s (%s %s)", n.ID, n.Resource.Type, n.Resource.Name)
	}
	if n.RoleAssignment != nil {
		return fmt.Sprintf("%s (%s on %s)", n.ID, n.RoleAssignment.Role, n.RoleAssignment.Scope)
	}
	return n.ID
}

// Provisioner creates or updates a single node
type Provisioner interface {
	Apply(ctx context.Context, node Node) error
}

// Runner applies a plan wave by wave. Nodes of the same wave run
// concurrently, at most Parallel at a time.
type Runner struct {
	Provisioner Provisioner
	Stdout      io.Writer
	Parallel    int

	mu sync.Mutex
}

func NewRunner(provisioner Provisioner, stdout io.Writer, parallel int) *Runner {
	if parallel < 1 {
		parallel = 1
	}
	return &Runner{
		Provisioner: provisioner,
		Stdout:      stdout,
		Parallel:    parallel,
	}
}

func (r *Runner) Run(ctx context.Context, plan *model.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	waves, err := Waves(plan)
	if err != nil {
		return err
	}
	nodes := nodesByID(plan)
	if err := checkWaves(waves, nodes, plan.Nodes()); err != nil {
		return err
	}

	for i, wave := range waves {
		r.printf("→ Wave %d (%d nodes)\n", i, len(wave))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.Parallel)
		for _, id := range wave {
			node := nodes[id]
			g.Go(func() error {
				r.printf("  - %s\n", node.Describe())
				if err := r.Provisioner.Apply(gctx, node); err != nil {
					return fmt.Errorf("node %s failed: %w", node.ID, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("wave %d: %w", i, err)
		}
	}

	return nil
}

func (r *Runner) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Stdout, format, args...)
}

// Waves returns the plan's waves, recomputing them from the dependency
// lists when the plan does not carry any
func Waves(plan *model.Plan) ([][]string, error) {
	if len(plan.Spec.Waves) > 0 {
		return plan.Spec.Waves, nil
	}
	graph := planner.NewGraph(plan.Nodes())
	if err := graph.CheckReferences(); err != nil {
		return nil, err
	}
	if err := graph.DetectCycles(); err != nil {
		return nil, err
	}
	return graph.Levels()
}

// checkWaves makes sure every node is scheduled exactly once and after
// everything it depends on
func checkWaves(waves [][]string, nodes map[string]Node, deps map[string][]string) error {
	scheduled := make(map[string]int, len(nodes))
	for i, wave := range waves {
		for _, id := range wave {
			if _, ok := nodes[id]; !ok {
				return fmt.Errorf("wave %d references unknown node %s", i, id)
			}
			if prev, ok := scheduled[id]; ok {
				return fmt.Errorf("node %s is scheduled in waves %d and %d", id, prev, i)
			}
			scheduled[id] = i
		}
	}

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		wave, ok := scheduled[id]
		if !ok {
			return fmt.Errorf("node %s is not scheduled in any wave", id)
		}
		for _, dep := range deps[id] {
			if at, ok := scheduled[dep]; ok && at >= wave {
				return fmt.Errorf("node %s in wave %d depends on %s in wave %d", id, wave, dep, at)
			}
		}
	}
	return nil
}

func nodesByID(plan *model.Plan) map[string]Node {
	nodes := make(map[string]Node, len(plan.Resources)+len(plan.RoleAssignments))
	for i := range plan.Resources {
		res := &plan.Resources[i]
		nodes[res.ID] = Node{ID: res.ID, Resource: res}
	}
	for i := range plan.RoleAssignments {
		ra := &plan.RoleAssignments[i]
		nodes[ra.ID] = Node{ID: ra.ID, RoleAssignment: ra}
	}
	return nodes
}

// DryRunProvisioner only records what would be applied
type DryRunProvisioner struct {
	mu      sync.Mutex
	applied []string
}

func (p *DryRunProvisioner) Apply(ctx context.Context, node Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applied = append(p.applied, node.ID)
	return nil
}

// Applied returns the node ids in the order they were applied
func (p *DryRunProvisioner) Applied() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.applied...)
}
