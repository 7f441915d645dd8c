package pipeline

import (
	"fmt"
	"strings"
)

// Renderer produces human-readable views of a pipeline's dependency
// graph and satisfaction state.
type Renderer struct {
	p *Pipeline
}

// Renderer returns a rendering helper for the pipeline.
func (p *Pipeline) Renderer() *Renderer {
	return &Renderer{p: p}
}

// DOT renders the dependency graph in Graphviz DOT format. Satisfied
// tasks are green, pending tasks grey; edges point from prerequisite to
// dependent.
func (r *Renderer) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph pipeline {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=filled];\n")
	fmt.Fprintf(&sb, "  label=%q;\n", r.p.Name)
	sb.WriteString("  labelloc=\"t\";\n\n")

	for _, name := range r.p.order {
		color := "lightgrey"
		if task, ok := r.p.Task(name); ok && task.Satisfied() {
			color = "lightgreen"
		}
		fmt.Fprintf(&sb, "  %q [fillcolor=%q];\n", name, color)
	}

	sb.WriteString("\n")
	for _, name := range r.p.order {
		for _, prereq := range r.p.requires[name] {
			fmt.Fprintf(&sb, "  %q -> %q;\n", prereq, name)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// TextSummary renders the execution order and per-task state as plain
// text.
func (r *Renderer) TextSummary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pipeline %q (%d tasks)\n\n", r.p.Name, r.p.Size())

	sb.WriteString("Execution order:\n")
	for i, name := range r.p.order {
		state := "pending"
		if task, ok := r.p.Task(name); ok && task.Satisfied() {
			state = "satisfied"
		}
		fmt.Fprintf(&sb, "  %d. %s [%s]", i+1, name, state)
		if deps := r.p.requires[name]; len(deps) > 0 {
			fmt.Fprintf(&sb, " requires %s", strings.Join(deps, ", "))
		}
		sb.WriteString("\n")
	}

	if invoke := r.p.invoke; len(invoke) > 0 {
		fmt.Fprintf(&sb, "\nInvocation sequence: %s\n", strings.Join(invoke, " -> "))
	}

	return sb.String()
}
