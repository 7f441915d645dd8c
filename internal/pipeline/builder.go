package pipeline

import (
	"fmt"

	"github.com/devVux/soutien/internal/guard"
)

// Builder assembles guarded tasks by name. Because guard tasks take
// their prerequisites as already-built values, the builder is the layer
// where late-bound, by-name references live; Build resolves them by
// constructing tasks in topological order, so a cyclic declaration can
// never produce a task graph and surfaces as an error instead.
type Builder struct {
	name     string
	order    []string
	actions  map[string]func()
	requires map[string][]string
	oneShot  map[string]bool
	invoke   []string
	sink     guard.DiagnosticFunc
}

// NewBuilder creates a Builder for a pipeline with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		actions:  make(map[string]func()),
		requires: make(map[string][]string),
		oneShot:  make(map[string]bool),
	}
}

// AddTask registers a task. Re-adding a name replaces its action but
// keeps its position and dependencies.
func (b *Builder) AddTask(name string, action func()) *Builder {
	if _, exists := b.actions[name]; !exists {
		b.order = append(b.order, name)
	}
	b.actions[name] = action
	return b
}

// AddOneShotTask registers a task whose action runs at most once across
// repeated invocations.
func (b *Builder) AddOneShotTask(name string, action func()) *Builder {
	b.AddTask(name, action)
	b.oneShot[name] = true
	return b
}

// AddDependency declares that task may only run after prereq has
// completed. Declaration order is kept: diagnostics for unmet
// prerequisites are emitted in the order the dependencies were added.
func (b *Builder) AddDependency(task, prereq string) *Builder {
	b.requires[task] = append(b.requires[task], prereq)
	return b
}

// InvocationOrder overrides the sequence in which Run invokes tasks.
// By default every task is invoked once in topological order; an
// explicit sequence may skip tasks or invoke them repeatedly, which is
// how a deliberately-unready pipeline is exercised.
func (b *Builder) InvocationOrder(names ...string) *Builder {
	b.invoke = append([]string{}, names...)
	return b
}

// WithSink routes unmet-dependency diagnostics for every built task to
// sink instead of the guard package default.
func (b *Builder) WithSink(sink guard.DiagnosticFunc) *Builder {
	b.sink = sink
	return b
}

// Build validates the declarations and constructs the pipeline. Every
// dependency and invocation name must refer to a registered task, and
// the dependency relation must be acyclic.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	execOrder, err := b.graph().topologicalSort()
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline %q: %w", b.name, err)
	}

	// Construct tasks prerequisites-first so each task receives its
	// prerequisites as finished values, in declaration order.
	tasks := make(map[string]*guard.Task, len(b.order))
	for _, name := range execOrder {
		prereqs := make([]guard.Prerequisite, 0, len(b.requires[name]))
		for _, dep := range b.requires[name] {
			prereqs = append(prereqs, tasks[dep])
		}
		task := guard.New(name, b.actions[name], prereqs...)
		if b.oneShot[name] {
			task.OneShot()
		}
		if b.sink != nil {
			task.WithSink(b.sink)
		}
		tasks[name] = task
	}

	invoke := b.invoke
	if invoke == nil {
		invoke = execOrder
	}

	requires := make(map[string][]string, len(b.requires))
	for name, deps := range b.requires {
		requires[name] = append([]string{}, deps...)
	}

	return &Pipeline{
		Name:     b.name,
		tasks:    tasks,
		order:    execOrder,
		invoke:   invoke,
		requires: requires,
	}, nil
}

// ShowOrder returns the planned execution order without building tasks.
func (b *Builder) ShowOrder() ([]string, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b.graph().topologicalSort()
}

func (b *Builder) validate() error {
	for task, deps := range b.requires {
		if _, exists := b.actions[task]; !exists {
			return fmt.Errorf("dependency declared for unknown task %q", task)
		}
		for _, dep := range deps {
			if _, exists := b.actions[dep]; !exists {
				return fmt.Errorf("task %q depends on unknown task %q", task, dep)
			}
		}
	}
	for _, name := range b.invoke {
		if _, exists := b.actions[name]; !exists {
			return fmt.Errorf("invocation order references unknown task %q", name)
		}
	}
	return nil
}

func (b *Builder) graph() *depGraph {
	g := newDepGraph()
	for _, name := range b.order {
		g.addNode(name)
	}
	for _, name := range b.order {
		for _, dep := range b.requires[name] {
			g.addEdge(name, dep)
		}
	}
	return g
}
