// Package pipeline assembles guarded tasks into runnable pipelines:
// declarative by-name construction, deterministic execution order, YAML
// manifests and graph rendering on top of the guard core.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/devVux/soutien/internal/guard"
	"github.com/devVux/soutien/internal/logger"
)

// Pipeline is a built, immutable set of guarded tasks with a fixed
// execution order and invocation sequence. Use a Builder or a Manifest
// to create one.
type Pipeline struct {
	Name string

	tasks    map[string]*guard.Task
	order    []string
	invoke   []string
	requires map[string][]string
}

// Task returns the named task.
func (p *Pipeline) Task(name string) (*guard.Task, bool) {
	t, ok := p.tasks[name]
	return t, ok
}

// Size returns the number of tasks in the pipeline.
func (p *Pipeline) Size() int {
	return len(p.tasks)
}

// ExecutionOrder returns the topological order the tasks were built in.
func (p *Pipeline) ExecutionOrder() []string {
	return append([]string{}, p.order...)
}

// InvocationSequence returns the sequence Run invokes tasks in. It
// defaults to the execution order but may skip or repeat tasks.
func (p *Pipeline) InvocationSequence() []string {
	return append([]string{}, p.invoke...)
}

// Requires returns the declared prerequisites of the named task.
func (p *Pipeline) Requires(name string) []string {
	return append([]string{}, p.requires[name]...)
}

// Report describes the outcome of one pipeline run. A blocked task is
// not a failure: it declined to run because a prerequisite was unmet and
// can be retried on a later run.
type Report struct {
	RunID    string
	Pipeline string
	Invoked  []string
	Executed []string
	Blocked  []string
}

// Summary renders a one-run human-readable summary.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pipeline %q run %s\n", r.Pipeline, r.RunID)
	fmt.Fprintf(&sb, "  Invoked:  %d\n", len(r.Invoked))
	fmt.Fprintf(&sb, "  Executed: %d\n", len(r.Executed))
	fmt.Fprintf(&sb, "  Blocked:  %d\n", len(r.Blocked))
	if len(r.Blocked) > 0 {
		fmt.Fprintf(&sb, "  Blocked tasks: %s\n", strings.Join(r.Blocked, ", "))
	}
	return sb.String()
}

// Run invokes the pipeline's tasks in its invocation sequence. Each
// invocation is synchronous; ctx is only consulted between invocations,
// so cancellation stops the run at the next task boundary. The returned
// error is non-nil only for cancellation, never for blocked tasks.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:    uuid.NewString(),
		Pipeline: p.Name,
	}

	logger.Op.WithFields(map[string]interface{}{
		"pipeline": p.Name,
		"run_id":   report.RunID,
		"tasks":    len(p.tasks),
	}).Debugf("starting pipeline run")

	for _, name := range p.invoke {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("pipeline %q interrupted before task %q: %w", p.Name, name, err)
		}

		task := p.tasks[name]
		before := task.Satisfied()
		task.Invoke()

		report.Invoked = append(report.Invoked, name)
		switch {
		case task.Satisfied() && !before:
			report.Executed = append(report.Executed, name)
			logger.Op.WithFields(map[string]interface{}{
				"pipeline": p.Name,
				"task":     name,
			}).Debugf("task executed")
		case !task.Satisfied():
			report.Blocked = append(report.Blocked, name)
			logger.Op.WithFields(map[string]interface{}{
				"pipeline": p.Name,
				"task":     name,
				"requires": strings.Join(p.requires[name], ","),
			}).Debugf("task blocked by unmet dependencies")
		}
	}

	return report, nil
}
